package protocol

import (
	"strconv"
	"strings"
	"time"
)

// ServerToken is the fixed value emitted in every response's "server"
// header.
const ServerToken = "GURT/1.0.0"

// SerializeRequest renders a request frame to wire bytes.
func SerializeRequest(r Request) []byte {
	return serializeRequest(r)
}

func serializeRequest(r Request) []byte {
	var b strings.Builder
	b.WriteString(r.Method)
	b.WriteByte(' ')
	b.WriteString(r.Path)
	b.WriteByte(' ')
	b.WriteString(Version)
	b.WriteString("\r\n")
	writeHeaders(&b, r.Headers)
	b.WriteString("\r\n")
	out := []byte(b.String())
	out = append(out, r.Body...)
	return out
}

// SerializeResponse renders a response frame to wire bytes, filling in
// the server/date headers and content-length/content-type when absent,
// per §4.1.
func SerializeResponse(r Response) []byte {
	return serializeResponse(withDefaultHeaders(r))
}

func serializeResponse(r Response) []byte {
	var b strings.Builder
	b.WriteString(Version)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(int(r.Status)))
	b.WriteByte(' ')
	b.WriteString(r.Status.Reason())
	b.WriteString("\r\n")
	writeHeaders(&b, r.Headers)
	b.WriteString("\r\n")
	out := []byte(b.String())
	out = append(out, r.Body...)
	return out
}

func withDefaultHeaders(r Response) Response {
	h := make(Headers, len(r.Headers))
	copy(h, r.Headers)
	if _, ok := h.Get("server"); !ok {
		h.Add("server", ServerToken)
	}
	if _, ok := h.Get("date"); !ok {
		h.Add("date", time.Now().UTC().Format(time.RFC1123))
	}
	if _, ok := h.Get("content-type"); !ok {
		h.Add("content-type", "application/json")
	}
	if _, ok := h.Get("content-length"); !ok {
		h.Add("content-length", strconv.Itoa(len(r.Body)))
	}
	r.Headers = h
	return r
}

func writeHeaders(b *strings.Builder, h Headers) {
	for _, hd := range h {
		b.WriteString(hd.Name)
		b.WriteString(": ")
		b.WriteString(hd.Value)
		b.WriteString("\r\n")
	}
}
