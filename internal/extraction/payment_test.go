package extraction

import "testing"

func TestClassifyPaymentMethod(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"upi keyword", "Paid via UPI\nRef 12345", PaymentUPI},
		{"phonepe app name", "PhonePe payment successful", PaymentUPI},
		{"vpa handle", "paid to merchant@ybl", PaymentUPI},
		{"card", "VISA ****1234", PaymentCard},
		{"debit keyword", "Debit from savings", PaymentCard},
		{"cash", "Cash\nChange: 5.00", PaymentCash},
		{"net banking", "Paid via net banking", PaymentBankTransfer},
		{"neft reference", "NEFT UTR N12345", PaymentBankTransfer},
		// UPI is checked before Card, so a receipt mentioning both
		// resolves to UPI.
		{"priority order upi before card", "Paid by UPI (no card used)", PaymentUPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyPaymentMethod(tt.text)
			if got == nil {
				t.Fatalf("ClassifyPaymentMethod(%q) = nil, want %q", tt.text, tt.want)
			}
			if *got != tt.want {
				t.Errorf("ClassifyPaymentMethod(%q) = %q, want %q", tt.text, *got, tt.want)
			}
		})
	}
}

func TestClassifyPaymentMethodNoMatch(t *testing.T) {
	if got := ClassifyPaymentMethod("Corner Bakery\nTOTAL ₹50"); got != nil {
		t.Errorf("ClassifyPaymentMethod = %q, want nil", *got)
	}
}
