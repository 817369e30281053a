package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRequestHeaderBlock parses the start-line and headers of a request
// out of a header block (everything up to and including the terminating
// "\r\n\r\n"). It does not read the body.
func ParseRequestHeaderBlock(block []byte) (Request, error) {
	lines := splitCRLFLines(block)
	if len(lines) == 0 {
		return Request{}, New(KindInvalidMessage, fmt.Errorf("empty header block"))
	}
	method, path, version, err := parseRequestStartLine(lines[0])
	if err != nil {
		return Request{}, err
	}
	if version != Version {
		return Request{}, New(KindInvalidMessage, fmt.Errorf("unsupported version %q", version))
	}
	headers, err := parseHeaderLines(lines[1:])
	if err != nil {
		return Request{}, err
	}
	return Request{Method: method, Path: path, Headers: headers}, nil
}

// ParseResponseHeaderBlock parses the status-line and headers of a
// response out of a header block.
func ParseResponseHeaderBlock(block []byte) (Response, error) {
	lines := splitCRLFLines(block)
	if len(lines) == 0 {
		return Response{}, New(KindInvalidMessage, fmt.Errorf("empty header block"))
	}
	version, code, err := parseStatusLine(lines[0])
	if err != nil {
		return Response{}, err
	}
	if version != Version {
		return Response{}, New(KindInvalidMessage, fmt.Errorf("unsupported version %q", version))
	}
	headers, err := parseHeaderLines(lines[1:])
	if err != nil {
		return Response{}, err
	}
	return Response{Status: Status(code), Headers: headers}, nil
}

// ContentLength returns the declared content-length, or (0, false) if
// absent or unparseable.
func ContentLength(h Headers) (int, bool) {
	v, ok := h.Get("content-length")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// splitCRLFLines splits a header block (including the trailing blank
// line before \r\n\r\n) into individual lines without their terminators.
// The trailing empty line(s) produced by the terminator are dropped.
func splitCRLFLines(block []byte) []string {
	s := strings.TrimSuffix(string(block), "\r\n\r\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\r\n")
}

func parseRequestStartLine(line string) (method, path, version string, err error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 {
		return "", "", "", New(KindInvalidMessage, fmt.Errorf("malformed start line %q", line))
	}
	return parts[0], parts[1], parts[2], nil
}

func parseStatusLine(line string) (version string, code int, err error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return "", 0, New(KindInvalidMessage, fmt.Errorf("malformed status line %q", line))
	}
	code, cerr := strconv.Atoi(parts[1])
	if cerr != nil {
		return "", 0, New(KindInvalidMessage, fmt.Errorf("malformed status code %q", parts[1]))
	}
	return parts[0], code, nil
}

func parseHeaderLines(lines []string) (Headers, error) {
	var out Headers
	for _, line := range lines {
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, New(KindInvalidMessage, fmt.Errorf("malformed header line %q", line))
		}
		out = append(out, Header{
			Name:  strings.ToLower(strings.TrimSpace(name)),
			Value: strings.TrimSpace(value),
		})
	}
	return out, nil
}
