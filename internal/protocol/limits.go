// Package protocol implements the GURT wire format: start-line and header
// parsing/serialization for requests and responses, shared by the server
// and client halves of the overlay protocol.
package protocol

// MaxMessageSize is the hard ceiling on an accumulated GURT message
// (header block plus body) enforced on both the server and client paths.
const MaxMessageSize = 10 * 1024 * 1024 // 10 MiB

// MaxHandshakeSize bounds the plaintext upgrade preamble read before TLS
// begins.
const MaxHandshakeSize = 8 * 1024 // 8 KiB

// Version is the fixed protocol version literal used on both the
// handshake start line and the in-TLS request/response start lines.
const Version = "GURT/1.0.0"

// ALPN is the fixed application-level protocol identifier advertised
// during the TLS handshake.
const ALPN = "GURT/1.0"
