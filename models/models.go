package models

import (
	"github.com/shopspring/decimal"

	"upi-service/upi"
)

// URIRequest carries a raw URI to classify or decode
type URIRequest struct {
	URI string `json:"uri" form:"uri" binding:"required"`
}

// ClassifyResponse reports whether a URI uses the upi scheme
type ClassifyResponse struct {
	URI   string `json:"uri"`
	IsUPI bool   `json:"is_upi"`
}

// Payload is the JSON form of a decoded UPI payload. Absent optional
// fields are omitted.
type Payload struct {
	PayeeName              string           `json:"payee_name" yaml:"payee_name"`
	PayeeAddress           string           `json:"payee_address" yaml:"payee_address"`
	MerchantCode           *string          `json:"merchant_code,omitempty" yaml:"merchant_code,omitempty"`
	TransactionID          *string          `json:"transaction_id,omitempty" yaml:"transaction_id,omitempty"`
	TransactionReferenceID *string          `json:"transaction_reference_id,omitempty" yaml:"transaction_reference_id,omitempty"`
	TransactionNote        *string          `json:"transaction_note,omitempty" yaml:"transaction_note,omitempty"`
	PayeeAmount            *decimal.Decimal `json:"payee_amount,omitempty" yaml:"payee_amount,omitempty"`
	MinimumAmount          *decimal.Decimal `json:"minimum_amount,omitempty" yaml:"minimum_amount,omitempty"`
	CurrencyCode           string           `json:"currency_code" yaml:"currency_code"`
	ReferenceURL           *string          `json:"reference_url,omitempty" yaml:"reference_url,omitempty"`
}

// DecodeResponse is returned for a successfully decoded URI
type DecodeResponse struct {
	RequestID string            `json:"request_id" yaml:"request_id"`
	URI       string            `json:"uri" yaml:"uri"`
	Payload   Payload           `json:"payload" yaml:"payload"`
	Extras    map[string]string `json:"extras" yaml:"extras"`
}

// DecodeErrorResponse is returned when a mandatory field is missing
type DecodeErrorResponse struct {
	RequestID string `json:"request_id" yaml:"request_id"`
	URI       string `json:"uri" yaml:"uri"`
	ErrorCode int    `json:"error_code" yaml:"error_code"`
	Error     string `json:"error" yaml:"error"`
}

// DiagnoseResponse lists every missing mandatory field of a URI
type DiagnoseResponse struct {
	URI    string   `json:"uri"`
	Errors []string `json:"errors"`
}

// NewPayload converts a decoded payload into its JSON form
func NewPayload(p *upi.Payload) Payload {
	return Payload{
		PayeeName:              p.PayeeName,
		PayeeAddress:           p.PayeeAddress,
		MerchantCode:           p.MerchantCode,
		TransactionID:          p.TransactionID,
		TransactionReferenceID: p.TransactionReferenceID,
		TransactionNote:        p.TransactionNote,
		PayeeAmount:            p.PayeeAmount,
		MinimumAmount:          p.MinimumAmount,
		CurrencyCode:           p.CurrencyCode,
		ReferenceURL:           p.ReferenceURL,
	}
}

// NewDecodeResponse builds the success response for res
func NewDecodeResponse(requestID string, res *upi.Result) *DecodeResponse {
	extras := make(map[string]string, len(res.Extras))
	for k, v := range res.Extras {
		extras[k] = v
	}
	return &DecodeResponse{
		RequestID: requestID,
		URI:       res.URI.String(),
		Payload:   NewPayload(res.Payload),
		Extras:    extras,
	}
}

// NewDecodeErrorResponse builds the failure response for err
func NewDecodeErrorResponse(requestID, uri string, err *upi.Error) *DecodeErrorResponse {
	return &DecodeErrorResponse{
		RequestID: requestID,
		URI:       uri,
		ErrorCode: int(err.Code),
		Error:     err.Code.String(),
	}
}
