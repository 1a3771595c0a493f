// Package upi detects and decodes UPI deep-link URIs of the form
// upi://pay?pa=alice@bank&pn=Alice&am=10.00.
package upi

import (
	"errors"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Extras maps query parameters outside the UPI vocabulary to their values.
type Extras map[string]string

// Result is the success outcome of Decode.
type Result struct {
	Payload *Payload
	Extras  Extras
	URI     *url.URL
}

// Callback receives the outcome of Delegate.Handle.
type Callback interface {
	OnSuccess(payload *Payload, extras Extras, uri *url.URL)
	OnFailure(code ErrorCode, uri *url.URL)
}

// Delegate hands decoded intents to a Callback.
type Delegate struct{}

// Handle decodes the intent data and reports to cb. Check the intent with
// IsIntent first.
func (Delegate) Handle(in *Intent, cb Callback) {
	res, err := Decode(in.Data)
	var decodeErr *Error
	if errors.As(err, &decodeErr) {
		cb.OnFailure(decodeErr.Code, in.Data)
		return
	}
	cb.OnSuccess(res.Payload, res.Extras, res.URI)
}

// Decode extracts the UPI payload from u. The scheme is not checked; callers
// classify with IsURI first. On failure the returned error is an *Error
// naming the first missing mandatory field, payee name before payee address.
func Decode(u *url.URL) (*Result, error) {
	query := parseQuery(u.RawQuery)

	payeeName, _ := lookup(query, ParamPayeeName)
	payeeAddress, _ := lookup(query, ParamPayeeAddress)

	if isBlank(payeeName) {
		return nil, &Error{Code: MissingPayeeName, URI: u}
	}
	if isBlank(payeeAddress) {
		return nil, &Error{Code: MissingPayeeAddress, URI: u}
	}

	payload := newPayloadBuilder(payeeName, payeeAddress).
		transactionReferenceID(optional(query, ParamTransactionReferenceID)).
		merchantCode(optional(query, ParamMerchantCode)).
		transactionID(optional(query, ParamTransactionID)).
		transactionNote(optional(query, ParamTransactionNote)).
		currencyCode(optional(query, ParamCurrencyCode)).
		referenceURL(optional(query, ParamReferenceURL)).
		payeeAmount(toDecimal(optional(query, ParamAmount))).
		minimumAmount(toDecimal(optional(query, ParamMinimumAmount))).
		build()

	return &Result{
		Payload: payload,
		Extras:  extras(query),
		URI:     u,
	}, nil
}

// Diagnose lists every missing mandatory field of u, payee name first.
// Decode still reports only the first of them.
func Diagnose(u *url.URL) []ErrorCode {
	query := parseQuery(u.RawQuery)

	var codes []ErrorCode
	if v, _ := lookup(query, ParamPayeeName); isBlank(v) {
		codes = append(codes, MissingPayeeName)
	}
	if v, _ := lookup(query, ParamPayeeAddress); isBlank(v) {
		codes = append(codes, MissingPayeeAddress)
	}
	return codes
}

func extras(query url.Values) Extras {
	names := make(map[string]struct{}, len(query))
	for name := range query {
		names[name] = struct{}{}
	}
	for _, p := range Params() {
		delete(names, p)
	}

	out := make(Extras, len(names))
	for name := range names {
		out[name], _ = lookup(query, name)
	}
	return out
}

// parseQuery splits a raw query on '&' only. Unlike url.ParseQuery it keeps
// pairs containing ';' or malformed escapes, leaving such text undecoded.
func parseQuery(raw string) url.Values {
	query := make(url.Values)
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		name = unescape(name)
		query[name] = append(query[name], unescape(value))
	}
	return query
}

func unescape(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return s
}

// lookup returns the first value of name.
func lookup(query url.Values, name string) (string, bool) {
	vs, ok := query[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func optional(query url.Values, name string) *string {
	v, ok := lookup(query, name)
	if !ok {
		return nil
	}
	return &v
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// maxAmountExponent bounds the decimal exponent of an amount. Rendering
// 1e20000000 expands every digit.
const maxAmountExponent = 64

// toDecimal returns nil for absent, malformed or out of range amounts.
func toDecimal(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return nil
	}
	return &d
}
