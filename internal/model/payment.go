package model

// Gateway query parameters appended by VNPAY on the redirect back.
const (
	VnpParamTxnRef        = "vnp_TxnRef"
	VnpParamAmount        = "vnp_Amount"
	VnpParamResponseCode  = "vnp_ResponseCode"
	VnpParamBankCode      = "vnp_BankCode"
	VnpParamTransactionNo = "vnp_TransactionNo"
	VnpParamPayDate       = "vnp_PayDate"
)

// VnpSuccessCode is the gateway response code for a settled payment.
const VnpSuccessCode = "00"

// PaymentVerdict is the outcome of a gateway return. When Verified is true
// the backend checked the signature and Valid/ResponseCode are its verdict;
// otherwise the backend was unreachable and ResponseCode is the gateway's
// own raw value, trusted as a fallback.
type PaymentVerdict struct {
	Valid        bool              `json:"valid"`
	ResponseCode string            `json:"responseCode"`
	Params       map[string]string `json:"params"`
	Verified     bool              `json:"-"`
}

// Succeeded reports whether the transaction should be shown as paid.
// A verified verdict requires both a valid signature and the success code.
// An unverified one can only go by the raw response code; the order still
// stays PENDING until the backend receives the gateway's IPN.
func (v *PaymentVerdict) Succeeded() bool {
	if v.Verified {
		return v.Valid && v.ResponseCode == VnpSuccessCode
	}
	return v.ResponseCode == VnpSuccessCode
}

func (v *PaymentVerdict) Param(key string) string {
	if v.Params == nil {
		return ""
	}
	return v.Params[key]
}
