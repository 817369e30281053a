package resolver

import (
	"context"
	"net"
)

// OSFallback resolves through the host OS's name resolution, used per
// §4.4's "OS name resolution fallback" precedence step when the overlay
// resolver is unreachable.
type OSFallback struct{}

func (OSFallback) Resolve(ctx context.Context, name string) (string, error) {
	addrs, err := net.DefaultResolver.LookupHost(ctx, name)
	if err != nil {
		return "", err
	}
	if len(addrs) == 0 {
		return "", &notFoundError{name: name}
	}
	return addrs[0], nil
}
