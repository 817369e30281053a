package resolver

import "context"

// LocalResolver answers from fixed local data without ever contacting
// the overlay resolver endpoint. Grounded on the teacher's
// resolvers.ZoneResolver, which answers from loaded zone data before any
// upstream is consulted; here the only "zone" is the single sentinel
// name §4.3 carves out.
type LocalResolver struct{}

// Resolve returns "127.0.0.1" for the sentinel name "localhost" and
// reports not-found for everything else, letting Chained fall through.
func (LocalResolver) Resolve(ctx context.Context, name string) (string, error) {
	if name == "localhost" {
		return "127.0.0.1", nil
	}
	return "", &notFoundError{name: name}
}
