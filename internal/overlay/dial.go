package overlay

import (
	"crypto/tls"
	"errors"
	"net"
	"time"

	"github.com/gurted/gurtd/internal/protocol"
)

var errNonTLS13 = errors.New("server negotiated a TLS version other than 1.3")

// Dial performs the client half of the handshake exchange: TCP connect,
// plaintext upgrade, TLS 1.3 upgrade with the fixed ALPN. The returned
// *tls.Conn is ready for one request/response exchange.
func Dial(network, addr string, connectTimeout, handshakeTimeout time.Duration) (*tls.Conn, error) {
	dialer := &net.Dialer{Timeout: connectTimeout}
	conn, err := dialer.Dial(network, addr)
	if err != nil {
		return nil, protocol.New(protocol.KindConnection, err)
	}

	if err := ClientHandshake(conn, handshakeTimeout); err != nil {
		conn.Close()
		return nil, err
	}

	tlsConn := tls.Client(conn, ClientTLSConfig())
	if handshakeTimeout > 0 {
		_ = tlsConn.SetDeadline(time.Now().Add(handshakeTimeout))
	}
	if err := tlsConn.Handshake(); err != nil {
		tlsConn.Close()
		return nil, protocol.New(protocol.KindConnection, err)
	}
	_ = tlsConn.SetDeadline(time.Time{})

	cs := tlsConn.ConnectionState()
	if cs.Version != tls.VersionTLS13 {
		tlsConn.Close()
		return nil, protocol.New(protocol.KindConnection, errNonTLS13)
	}
	return tlsConn, nil
}
