package protocol

import (
	"bytes"
	"errors"
	"io"
)

// ErrLimitExceeded is returned when an accumulated message would exceed
// MaxMessageSize before a header terminator is found.
var ErrLimitExceeded = errors.New("message exceeds size ceiling")

var headerTerminator = []byte("\r\n\r\n")

// scanHeaderEnd looks for "\r\n\r\n" in buf, resuming from searched rather
// than re-scanning bytes already examined on a prior call. This keeps
// incremental accumulation of a growing header block O(n) total instead
// of O(n²), per §4.1's explicit anti-quadratic-rescan requirement.
//
// Returns the index immediately after the terminator (i.e. where the body
// begins) and true if found. If not found, returns the offset the next
// call should resume scanning from.
func scanHeaderEnd(buf []byte, searched int) (bodyStart int, found bool, nextSearched int) {
	start := searched
	if start > 3 {
		start -= 3
	} else {
		start = 0
	}
	if idx := bytes.Index(buf[start:], headerTerminator); idx >= 0 {
		return start + idx + len(headerTerminator), true, 0
	}
	next := len(buf) - 3
	if next < 0 {
		next = 0
	}
	return 0, false, next
}

// ReadHeaderBlock reads from r, accumulating bytes until the header block
// terminator "\r\n\r\n" is found or limit is exceeded. It returns every
// byte read (header block plus any body bytes that arrived in the same
// chunk) and the index at which the body begins.
func ReadHeaderBlock(r io.Reader, limit int) (all []byte, bodyStart int, err error) {
	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 4096)
	searched := 0

	for {
		n, rerr := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			if len(buf) > limit {
				return nil, 0, ErrLimitExceeded
			}
			if bs, found, next := scanHeaderEnd(buf, searched); found {
				return buf, bs, nil
			} else {
				searched = next
			}
		}
		if rerr != nil {
			return nil, 0, rerr
		}
	}
}
