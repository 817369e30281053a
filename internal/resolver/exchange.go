package resolver

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/gurted/gurtd/internal/overlay"
	"github.com/gurted/gurtd/internal/protocol"
)

// exchange performs one direct GURT round trip to addr — dial, plaintext
// handshake, TLS 1.3 upgrade, request, response — independent of the
// internal/transport client. The resolver cannot use that client because
// the client itself depends on the resolver for address precedence
// (§4.4); resolving the resolver's own endpoint through itself would be
// a cycle, so the resolver dials its configured literal address
// directly, per §4.3's "never invokes itself to resolve its own host".
func exchange(ctx context.Context, addr string, req protocol.Request, timeout time.Duration) (protocol.Response, error) {
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	connectTimeout := time.Until(deadline)

	conn, err := overlay.Dial("tcp", addr, connectTimeout, connectTimeout)
	if err != nil {
		return protocol.Response{}, err
	}
	defer conn.Close()
	_ = conn.SetDeadline(deadline)

	if _, err := conn.Write(protocol.SerializeRequest(req)); err != nil {
		return protocol.Response{}, protocol.New(protocol.KindIO, err)
	}

	block, bodyStart, err := protocol.ReadHeaderBlock(conn, protocol.MaxMessageSize)
	if err != nil {
		return protocol.Response{}, protocol.New(protocol.KindIO, err)
	}
	resp, err := protocol.ParseResponseHeaderBlock(block[:bodyStart])
	if err != nil {
		return protocol.Response{}, err
	}
	body := block[bodyStart:]
	if n, ok := protocol.ContentLength(resp.Headers); ok {
		for len(body) < n {
			buf := make([]byte, n-len(body))
			r, rerr := conn.Read(buf)
			if r > 0 {
				body = append(body, buf[:r]...)
			}
			if rerr != nil {
				break
			}
		}
	}
	resp.Body = body
	return resp, nil
}

func resolveFullRequest(domain string) protocol.Request {
	body, _ := json.Marshal(resolveRequest{Domain: domain})
	headers := protocol.Headers{
		{Name: "content-type", Value: "application/json"},
		{Name: "content-length", Value: strconv.Itoa(len(body))},
	}
	return protocol.Request{Method: "POST", Path: "/resolve-full", Headers: headers, Body: body}
}
