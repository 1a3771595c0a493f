package upi

import (
	"fmt"
	"net/url"
)

// ErrorCode states why a UPI URI could not be decoded.
type ErrorCode int

const (
	MissingPayeeAddress ErrorCode = 100
	MissingPayeeName    ErrorCode = 101
)

func (c ErrorCode) String() string {
	switch c {
	case MissingPayeeAddress:
		return "MISSING_PAYEE_ADDRESS"
	case MissingPayeeName:
		return "MISSING_PAYEE_NAME"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// Error is the failure outcome of Decode.
type Error struct {
	Code ErrorCode
	URI  *url.URL
}

func (e *Error) Error() string {
	return fmt.Sprintf("upi: %s", e.Code)
}
