package upi

// Query parameter keys defined by the UPI Linking Specification.
const (
	// Mandatory
	ParamPayeeAddress = "pa"
	ParamPayeeName    = "pn"

	// Conditional, required for merchant transactions only
	ParamTransactionReferenceID = "tr"

	// Optional
	ParamAmount          = "am"
	ParamMinimumAmount   = "mam"
	ParamMerchantCode    = "mc"
	ParamTransactionID   = "tid"
	ParamTransactionNote = "tn"
	ParamCurrencyCode    = "cu"
	ParamReferenceURL    = "url"
)

var knownParams = map[string]struct{}{
	ParamPayeeAddress:           {},
	ParamPayeeName:              {},
	ParamTransactionReferenceID: {},
	ParamAmount:                 {},
	ParamMinimumAmount:          {},
	ParamMerchantCode:           {},
	ParamTransactionID:          {},
	ParamTransactionNote:        {},
	ParamCurrencyCode:           {},
	ParamReferenceURL:           {},
}

// Params returns the recognized query parameter keys.
func Params() []string {
	return []string{
		ParamPayeeAddress, ParamPayeeName, ParamTransactionReferenceID,
		ParamAmount, ParamMinimumAmount, ParamMerchantCode,
		ParamTransactionID, ParamTransactionNote, ParamCurrencyCode,
		ParamReferenceURL,
	}
}

// IsKnownParam reports whether name belongs to the UPI vocabulary.
func IsKnownParam(name string) bool {
	_, ok := knownParams[name]
	return ok
}
