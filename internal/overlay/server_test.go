package overlay

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gurted/gurtd/internal/protocol"
	"github.com/stretchr/testify/require"
)

type echoHandler struct{}

func (echoHandler) Handle(ctx context.Context, req protocol.Request, peer net.Addr) protocol.Response {
	return protocol.Response{Status: protocol.StatusOK, Body: []byte(`{"status":"ready"}`)}
}

func TestServerHandshakeAndRequest(t *testing.T) {
	cert := generateTestCert(t)
	srv := &Server{Handler: echoHandler{}, TLSCert: cert}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv.ln = ln
	addr := ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go srv.handleConn(ctx, conn)
		}
	}()

	conn, err := Dial("tcp", addr, time.Second, time.Second)
	require.NoError(t, err)
	defer conn.Close()

	req := protocol.Request{Method: "GET", Path: "/health/ready", Headers: protocol.Headers{{Name: "host", Value: "example"}}}
	_, err = conn.Write(protocol.SerializeRequest(req))
	require.NoError(t, err)

	block, bodyStart, err := protocol.ReadHeaderBlock(conn, protocol.MaxMessageSize)
	require.NoError(t, err)
	resp, err := protocol.ParseResponseHeaderBlock(block[:bodyStart])
	require.NoError(t, err)
	require.Equal(t, protocol.StatusOK, resp.Status)
}

func TestServerHandshakeRejectsBadStartLine(t *testing.T) {
	cert := generateTestCert(t)
	srv := &Server{Handler: echoHandler{}, TLSCert: cert}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		srv.handleConn(context.Background(), conn)
	}()

	conn, err := net.DialTimeout("tcp", addr, time.Second)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("NOT A HANDSHAKE\r\n\r\n"))
	require.NoError(t, err)

	buf := make([]byte, 16)
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	n, _ := conn.Read(buf)
	require.Equal(t, 0, n, "server must close without writing a response on a malformed handshake")
}
