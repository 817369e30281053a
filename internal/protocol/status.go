package protocol

import "fmt"

// Status is a canonical GURT status code. Only the codes the core engine
// emits are enumerated; unknown codes encountered while parsing a peer's
// response are carried as their raw integer.
type Status int

const (
	StatusOK                    Status = 200
	StatusBadRequest             Status = 400
	StatusTooManyRequests        Status = 429
	StatusRequestEntityTooLarge  Status = 413
	StatusInternalServerError    Status = 500
)

// Reason returns the fixed ASCII reason phrase for a status code.
func (s Status) Reason() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusBadRequest:
		return "BAD_REQUEST"
	case StatusRequestEntityTooLarge:
		return "TOO_LARGE"
	case StatusInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	case StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		return fmt.Sprintf("STATUS_%d", int(s))
	}
}
