package upi

import "github.com/shopspring/decimal"

// DefaultCurrencyCode is used when a URI carries no cu parameter.
const DefaultCurrencyCode = "INR"

// Payload holds the values of a decoded UPI URI. Optional fields are nil when
// the URI did not carry them.
type Payload struct {
	PayeeName    string
	PayeeAddress string

	MerchantCode *string
	// TransactionID is a PSP generated id. Merchants may acquire it from
	// their PSP.
	TransactionID *string
	// TransactionReferenceID is an order number, bill id, booking id or
	// similar. Mandatory for merchant transactions only.
	TransactionReferenceID *string
	TransactionNote        *string
	PayeeAmount            *decimal.Decimal
	// MinimumAmount is the minimum to be paid when it differs from the
	// payee amount.
	MinimumAmount *decimal.Decimal
	CurrencyCode  string
	// ReferenceURL points at further details for this transaction only.
	ReferenceURL *string
}

type payloadBuilder struct {
	p Payload
}

func newPayloadBuilder(payeeName, payeeAddress string) *payloadBuilder {
	return &payloadBuilder{p: Payload{
		PayeeName:    payeeName,
		PayeeAddress: payeeAddress,
		CurrencyCode: DefaultCurrencyCode,
	}}
}

func (b *payloadBuilder) merchantCode(v *string) *payloadBuilder {
	b.p.MerchantCode = v
	return b
}

func (b *payloadBuilder) transactionID(v *string) *payloadBuilder {
	b.p.TransactionID = v
	return b
}

func (b *payloadBuilder) transactionReferenceID(v *string) *payloadBuilder {
	b.p.TransactionReferenceID = v
	return b
}

func (b *payloadBuilder) transactionNote(v *string) *payloadBuilder {
	b.p.TransactionNote = v
	return b
}

func (b *payloadBuilder) payeeAmount(v *decimal.Decimal) *payloadBuilder {
	b.p.PayeeAmount = v
	return b
}

func (b *payloadBuilder) minimumAmount(v *decimal.Decimal) *payloadBuilder {
	b.p.MinimumAmount = v
	return b
}

// currencyCode keeps the default when v is nil. An explicit empty value is
// kept as is.
func (b *payloadBuilder) currencyCode(v *string) *payloadBuilder {
	if v != nil {
		b.p.CurrencyCode = *v
	}
	return b
}

func (b *payloadBuilder) referenceURL(v *string) *payloadBuilder {
	b.p.ReferenceURL = v
	return b
}

func (b *payloadBuilder) build() *Payload {
	p := b.p
	return &p
}
