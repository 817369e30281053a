package transport

import (
	"bytes"
	"crypto/tls"
	"errors"
	"time"

	"github.com/gurted/gurtd/internal/protocol"
)

var errBodyTooLarge = errors.New("transport: response body exceeds the message size ceiling")

// readBody pulls the response body following a header block already
// parsed from headerBlock. When contentLength is known the exact byte
// count is read under the overall fetch deadline. Otherwise the body is
// read until the peer closes the connection or stays silent for
// idleTimeout, whichever comes first — §4.4's "read until close" mode
// for responses that omit content-length.
func readBody(conn *tls.Conn, already []byte, contentLength int, haveLength bool, idleTimeout time.Duration) ([]byte, error) {
	if haveLength {
		return readExactly(conn, already, contentLength)
	}
	return readUntilIdle(conn, already, idleTimeout)
}

func readExactly(conn *tls.Conn, already []byte, want int) ([]byte, error) {
	if len(already) >= want {
		return already[:want], nil
	}
	if want > protocol.MaxMessageSize {
		return nil, errBodyTooLarge
	}
	buf := make([]byte, want)
	n := copy(buf, already)
	for n < want {
		m, err := conn.Read(buf[n:])
		n += m
		if err != nil {
			if n == want {
				break
			}
			return nil, err
		}
	}
	return buf, nil
}

func readUntilIdle(conn *tls.Conn, already []byte, idleTimeout time.Duration) ([]byte, error) {
	var out bytes.Buffer
	out.Write(already)
	chunk := make([]byte, 4096)
	for {
		conn.SetReadDeadline(time.Now().Add(idleTimeout))
		n, err := conn.Read(chunk)
		if n > 0 {
			out.Write(chunk[:n])
		}
		if out.Len() > protocol.MaxMessageSize {
			return nil, errBodyTooLarge
		}
		if err != nil {
			break
		}
	}
	return out.Bytes(), nil
}
