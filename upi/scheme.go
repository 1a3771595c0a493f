package upi

import (
	"net/url"
	"strings"
)

const scheme = "upi"

// Intent is the envelope a host platform delivers a deep link in.
type Intent struct {
	Action string
	Data   *url.URL
}

// IsIntent reports whether the intent carries a UPI URI. It is safe to call
// with a nil intent.
func IsIntent(in *Intent) bool {
	if in == nil {
		return false
	}
	return in.Data != nil && IsURI(in.Data)
}

// IsURI reports whether u uses the upi scheme, ignoring case. u must not be nil.
func IsURI(u *url.URL) bool {
	return strings.ToLower(u.Scheme) == scheme
}
