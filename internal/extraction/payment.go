package extraction

import "strings"

// Canonical payment method labels.
const (
	PaymentUPI          = "UPI"
	PaymentCard         = "Card"
	PaymentCash         = "Cash"
	PaymentBankTransfer = "Bank Transfer"
)

// paymentMethodTable is evaluated in fixed priority order; unlike
// category detection, payment detection is not scored: the first
// method with any keyword hit wins and scanning stops.
var paymentMethodTable = []struct {
	method   string
	keywords []string
}{
	{PaymentUPI, []string{
		"upi", "gpay", "google pay", "phonepe", "paytm", "bhim",
		"@ybl", "@oksbi", "@okaxis", "qr code",
	}},
	{PaymentCard, []string{
		"card", "visa", "mastercard", "rupay", "amex", "credit", "debit", "pos",
	}},
	{PaymentCash, []string{
		"cash", "change due", "tendered",
	}},
	{PaymentBankTransfer, []string{
		"neft", "imps", "rtgs", "net banking", "netbanking", "bank transfer",
	}},
}

// ClassifyPaymentMethod returns the first payment method whose keyword
// set matches anywhere in the text, or nil when none match.
func ClassifyPaymentMethod(text string) *string {
	lower := strings.ToLower(text)
	for _, entry := range paymentMethodTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return strPtr(entry.method)
			}
		}
	}
	return nil
}
