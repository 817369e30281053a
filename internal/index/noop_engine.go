package index

// noopEngine answers every call successfully but indexes nothing and
// finds nothing. Open does not select it; it is only constructed
// directly.
type noopEngine struct{}

func newNoopEngine() *noopEngine { return &noopEngine{} }

func (noopEngine) Name() string                  { return "noop" }
func (noopEngine) Add(Document) error            { return nil }
func (noopEngine) Commit() error                 { return nil }
func (noopEngine) Refresh() error                { return nil }
func (noopEngine) Search(terms []string, filter Filter, page, size int) ([]Hit, error) {
	return []Hit{}, nil
}
