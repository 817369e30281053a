package overlay

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/gurted/gurtd/internal/protocol"
)

// handshakeStartLine is the exact plaintext request line that must open
// every handshake attempt, per §4.2.
const handshakeStartLine = "HANDSHAKE / " + protocol.Version

// handshakeStatusLine is the exact plaintext response line the server
// writes on a successful handshake, followed by the four required
// headers and a blank line.
const handshakeStatusLine = protocol.Version + " 101 SWITCHING_PROTOCOLS"

// TLSConfig returns a *tls.Config pinned to TLS 1.3 and the fixed ALPN
// identifier, shared by both the server and client halves of the
// handshake.
func TLSConfig(cert tls.Certificate) *tls.Config {
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS13,
		MaxVersion:   tls.VersionTLS13,
		NextProtos:   []string{protocol.ALPN},
	}
}

// ClientTLSConfig returns the client-side TLS config enforcing the same
// version and ALPN pin. GURT hosts are identified by the overlay's own
// resolver, not the web PKI, so peer certificates are not expected to
// chain to a system root; verification is skipped rather than requiring
// every host to be enrolled in a CA hierarchy this network doesn't have.
func ClientTLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion:         tls.VersionTLS13,
		MaxVersion:         tls.VersionTLS13,
		NextProtos:         []string{protocol.ALPN},
		InsecureSkipVerify: true,
	}
}

// ServerHandshake reads the plaintext upgrade preamble from conn and, on
// success, writes the 101 response. Returns an error (and leaves the
// connection in a state the caller should Close) if the preamble is
// missing, malformed, or doesn't equal the required start line — per
// §4.2, the connection is closed with no response in that case.
func ServerHandshake(conn net.Conn, deadline time.Duration) error {
	if deadline > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(deadline))
		defer conn.SetReadDeadline(time.Time{})
	}

	block, _, err := protocol.ReadHeaderBlock(conn, protocol.MaxHandshakeSize)
	if err != nil {
		return protocol.New(protocol.KindInvalidMessage, err)
	}

	lines := bytes.SplitN(bytes.TrimSuffix(block, []byte("\r\n\r\n")), []byte("\r\n"), 2)
	if len(lines) == 0 || string(lines[0]) != handshakeStartLine {
		return protocol.New(protocol.KindInvalidMessage, fmt.Errorf("invalid handshake start line"))
	}

	resp := buildHandshakeResponse()
	if _, err := conn.Write(resp); err != nil {
		return protocol.New(protocol.KindIO, err)
	}
	return nil
}

func buildHandshakeResponse() []byte {
	var b bytes.Buffer
	b.WriteString(handshakeStatusLine)
	b.WriteString("\r\n")
	b.WriteString("gurt-version: 1.0.0\r\n")
	b.WriteString("encryption: TLS/1.3\r\n")
	b.WriteString("alpn: " + protocol.ALPN + "\r\n")
	b.WriteString("server: " + protocol.ServerToken + "\r\n")
	b.WriteString("date: " + time.Now().UTC().Format(time.RFC1123) + "\r\n")
	b.WriteString("\r\n")
	return b.Bytes()
}

// ClientHandshake writes the plaintext upgrade request and validates the
// server's response. Any deviation in version or status is a hard
// failure, per §4.2.
func ClientHandshake(conn net.Conn, deadline time.Duration) error {
	if deadline > 0 {
		_ = conn.SetDeadline(time.Now().Add(deadline))
		defer conn.SetDeadline(time.Time{})
	}

	req := handshakeStartLine + "\r\n\r\n"
	if _, err := conn.Write([]byte(req)); err != nil {
		return protocol.New(protocol.KindIO, err)
	}

	block, _, err := protocol.ReadHeaderBlock(conn, protocol.MaxHandshakeSize)
	if err != nil {
		return protocol.New(protocol.KindInvalidMessage, err)
	}
	lines := bytes.SplitN(bytes.TrimSuffix(block, []byte("\r\n\r\n")), []byte("\r\n"), 2)
	if len(lines) == 0 || string(lines[0]) != handshakeStatusLine {
		return protocol.New(protocol.KindInvalidMessage, fmt.Errorf("unexpected handshake response %q", firstLine(lines)))
	}
	return nil
}

func firstLine(lines [][]byte) string {
	if len(lines) == 0 {
		return ""
	}
	return string(lines[0])
}
