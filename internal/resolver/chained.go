package resolver

import (
	"context"
	"errors"
)

// Chained tries each resolver in order until one succeeds. Kept
// near-verbatim from the teacher's resolvers.Chained, generalized past
// the DNS-specific Packet/[]byte signature to the plain
// name-in/address-out Resolver interface this engine needs.
type Chained struct {
	Resolvers []Resolver
}

// Resolve tries each resolver in order, checking for context
// cancellation between attempts so a shutdown in progress doesn't keep
// trying further resolvers.
func (c *Chained) Resolve(ctx context.Context, name string) (string, error) {
	var lastErr error
	for _, r := range c.Resolvers {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		addr, err := r.Resolve(ctx, name)
		if err == nil {
			return addr, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no resolver could answer")
	}
	return "", lastErr
}
