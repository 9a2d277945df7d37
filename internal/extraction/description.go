package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxDescriptionLines = 3
	maxDescriptionLen   = 150
)

var (
	descriptionSkipRe = regexp.MustCompile(`(?i)total|subtotal|tax|receipt`)
	bareDateLineRe    = regexp.MustCompile(`^\d{1,4}[\-/]\d{1,2}[\-/]\d{1,4}$`)
	bareAmountLineRe  = regexp.MustCompile(`^(?:₹|\$|€|£|rs\.?\s*|inr\s*)?\d[\d,]*(?:\.\d{1,2})?$`)
)

// bare payment labels on their own line describe the tender, not the
// purchase, and are dropped from descriptions.
var paymentLabelLines = map[string]bool{
	"cash": true, "card": true, "upi": true, "credit card": true,
	"debit card": true, "net banking": true, "netbanking": true,
}

// ExtractDescription joins the first few informative lines of the
// receipt into a short human-readable summary, or nil when no line
// survives the filters.
func ExtractDescription(text string) *string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) <= 3 {
			continue
		}
		if descriptionSkipRe.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)
		if paymentLabelLines[lower] || bareDateLineRe.MatchString(line) || bareAmountLineRe.MatchString(lower) {
			continue
		}
		kept = append(kept, line)
		if len(kept) == maxDescriptionLines {
			break
		}
	}

	if len(kept) == 0 {
		return nil
	}

	desc := strings.Join(kept, ", ")
	return strPtr(truncateAtRune(desc, maxDescriptionLen))
}

// truncateAtRune caps s at limit bytes, backing up so the cut never
// splits a multibyte rune.
func truncateAtRune(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
