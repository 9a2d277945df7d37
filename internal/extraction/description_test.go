package extraction

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "merchant line only",
			text: "Cafe Corner\nSubtotal: Rs 100.00\nTax: Rs 10.00\nCash\n12/01/2024",
			want: "Cafe Corner",
		},
		{
			name: "joins first three surviving lines",
			text: "Fresh Mart\nOnion 1kg\nTomato 2kg\nPotato 5kg\nCarrot 1kg",
			want: "Fresh Mart, Onion 1kg, Tomato 2kg",
		},
		{
			name: "drops short and noisy lines",
			text: "ABC\n\nSpice Bazaar\nTOTAL 99\nGST Receipt No 4",
			want: "Spice Bazaar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDescription(tt.text)
			if got == nil {
				t.Fatalf("ExtractDescription(%q) = nil, want %q", tt.text, tt.want)
			}
			if *got != tt.want {
				t.Errorf("ExtractDescription(%q) = %q, want %q", tt.text, *got, tt.want)
			}
		})
	}
}

func TestExtractDescriptionNone(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"only totals and tax", "TOTAL 450\nSubtotal 400\nTax 50"},
		{"only short lines", "AB\nCD\nEF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractDescription(tt.text); got != nil {
				t.Errorf("ExtractDescription(%q) = %q, want nil", tt.text, *got)
			}
		})
	}
}

func TestExtractDescriptionLengthCap(t *testing.T) {
	long := strings.Repeat("Very Long Item Name ", 20)
	got := ExtractDescription(long)
	if got == nil {
		t.Fatal("ExtractDescription = nil, want capped string")
	}
	if len(*got) > 150 {
		t.Errorf("description length = %d, want <= 150", len(*got))
	}
}

func TestExtractDescriptionLengthCapMultibyte(t *testing.T) {
	// The cap must never land inside a multibyte rune.
	long := "Item " + strings.Repeat("₹", 50)
	got := ExtractDescription(long)
	if got == nil {
		t.Fatal("ExtractDescription = nil, want capped string")
	}
	if len(*got) > 150 {
		t.Errorf("description length = %d, want <= 150", len(*got))
	}
	if !utf8.ValidString(*got) {
		t.Errorf("description is not valid UTF-8: %q", *got)
	}
}
