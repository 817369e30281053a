package index

// Engine is the capability set every index variant implements: a name
// for diagnostics, mutation (Add), durability (Commit), visibility
// (Refresh), and retrieval (Search). Modeled as an interface with
// per-variant structs, per §7's "polymorphism over engines" note, so
// the factory can fall back across variants without the caller caring
// which one answered.
type Engine interface {
	Name() string
	Add(doc Document) error
	Commit() error
	Refresh() error
	Search(terms []string, filter Filter, page, size int) ([]Hit, error)
}

// Open returns the in-memory engine for every path. path is ignored:
// this package has no on-disk engine, so nothing is persisted across
// restarts, and Open never returns the no-op engine.
func Open(path string) Engine {
	_ = path
	return newMemoryEngine()
}
