package overlay

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/gurted/gurtd/internal/pool"
	"github.com/gurted/gurtd/internal/protocol"
)

var (
	errTooMuchBody  = errors.New("received more body bytes than declared content-length")
	errOversizeBody = errors.New("declared content-length exceeds the message size ceiling")
)

const readScratchSize = 32 * 1024

// readScratchPool reuses the fixed-size buffers readExactBody drains
// conn.Read into, so a server handling many large bodies doesn't churn
// a fresh allocation per read syscall.
var readScratchPool = pool.New(func() []byte { return make([]byte, readScratchSize) })

// Handler processes one parsed request and returns the response to emit.
// Implementations must be safe for concurrent use: one handler instance
// serves every connection.
type Handler interface {
	Handle(ctx context.Context, req protocol.Request, peer net.Addr) protocol.Response
}

// Server accepts GURT connections: plaintext handshake, TLS 1.3 upgrade,
// one request/response exchange per connection. Grounded on the
// teacher's TCPServer goroutine-per-connection shape in
// internal/server/tcp_server.go, generalized from length-prefixed DNS
// messages to GURT's HTTP-like framing and adding the handshake+TLS
// stage the DNS server never needed.
type Server struct {
	Logger  *slog.Logger
	Handler Handler
	TLSCert tls.Certificate

	ln net.Listener
	wg sync.WaitGroup
}

// Run accepts connections on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.ln = ln
	return s.Serve(ctx, ln)
}

// Serve accepts connections on an already-open listener until ctx is
// cancelled, closing ln itself when that happens. Split out from Run so
// callers (and tests) that need control over listener setup — ephemeral
// ports, pre-bound sockets — can supply their own.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.wg.Wait()
				return nil
			}
			return err
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

// Stop waits up to timeout for in-flight connections to finish after the
// listener has been closed (by context cancellation).
func (s *Server) Stop(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	state := PreHandshake
	defer func() {
		conn.Close()
		state = Closed
		if s.Logger != nil {
			s.Logger.Debug("connection closed", "state", state.String())
		}
	}()

	if err := ServerHandshake(conn, 2*time.Second); err != nil {
		if s.Logger != nil {
			s.Logger.Debug("handshake failed", "err", err)
		}
		return
	}

	tlsConn := tls.Server(conn, TLSConfig(s.TLSCert))
	if err := tlsConn.SetDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return
	}
	if err := tlsConn.Handshake(); err != nil {
		if s.Logger != nil {
			s.Logger.Debug("tls handshake failed", "err", err)
		}
		return
	}
	cs := tlsConn.ConnectionState()
	if cs.Version != tls.VersionTLS13 {
		// §4.2/§8 invariant 4: non-1.3 sessions are shut down silently,
		// no response frame is written.
		return
	}
	state = TlsAccepted
	_ = tlsConn.SetDeadline(time.Time{})

	block, bodyStart, err := protocol.ReadHeaderBlock(tlsConn, protocol.MaxMessageSize)
	if err != nil {
		s.writeError(tlsConn, err)
		return
	}
	req, err := protocol.ParseRequestHeaderBlock(block[:bodyStart])
	if err != nil {
		s.writeError(tlsConn, err)
		return
	}
	body := append([]byte(nil), block[bodyStart:]...)
	if n, ok := protocol.ContentLength(req.Headers); ok {
		body, err = readExactBody(tlsConn, body, n)
		if err != nil {
			s.writeError(tlsConn, err)
			return
		}
	}
	req.Body = body
	state = RequestParsed

	resp := s.Handler.Handle(ctx, req, conn.RemoteAddr())
	_, _ = tlsConn.Write(protocol.SerializeResponse(resp))
	state = Responded
}

func readExactBody(conn net.Conn, have []byte, want int) ([]byte, error) {
	if len(have) > want {
		return nil, protocol.New(protocol.KindInvalidMessage, errTooMuchBody)
	}
	if want > protocol.MaxMessageSize {
		return nil, protocol.New(protocol.KindLimitExceeded, errOversizeBody)
	}
	out := make([]byte, len(have), want)
	copy(out, have)
	remaining := want - len(have)
	for remaining > 0 {
		scratch := readScratchPool.Get()
		readInto := scratch
		if remaining < len(readInto) {
			readInto = readInto[:remaining]
		}
		n, err := conn.Read(readInto)
		if n > 0 {
			out = append(out, readInto[:n]...)
			remaining -= n
		}
		readScratchPool.Put(scratch)
		if err != nil {
			return nil, protocol.New(protocol.KindIO, err)
		}
	}
	return out, nil
}

func (s *Server) writeError(conn net.Conn, err error) {
	status := protocol.StatusBadRequest
	var perr *protocol.Error
	if errors.Is(err, protocol.ErrLimitExceeded) || (errors.As(err, &perr) && perr.Kind == protocol.KindLimitExceeded) {
		status = protocol.StatusRequestEntityTooLarge
	}
	resp := protocol.Response{Status: status, Body: []byte(`{"error":"` + status.Reason() + `"}`)}
	_, _ = conn.Write(protocol.SerializeResponse(resp))
}
