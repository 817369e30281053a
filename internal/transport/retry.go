package transport

import (
	"context"
	"time"

	"github.com/gurted/gurtd/internal/protocol"
)

const retryBackoff = 200 * time.Millisecond

// withRetry runs attempt up to cfg.MaxRetries+1 times, retrying only
// when the failure is a protocol.Retryable (connection/timeout/IO)
// error — a malformed-message error is never worth repeating against
// the same peer. Grounded on the teacher's ForwardingResolver retry
// bookkeeping (upstreamFailedAt/maxRetries), generalized from DNS
// upstream failover to overlay fetch attempts.
func withRetry(ctx context.Context, cfg Config, attempt func() (protocol.Response, error)) (protocol.Response, error) {
	var lastErr error
	for i := 0; i <= cfg.MaxRetries; i++ {
		if ctx.Err() != nil {
			return protocol.Response{}, ctx.Err()
		}
		resp, err := attempt()
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !protocol.Retryable(err) {
			return protocol.Response{}, err
		}
		if i < cfg.MaxRetries {
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return protocol.Response{}, ctx.Err()
			}
		}
	}
	return protocol.Response{}, lastErr
}
