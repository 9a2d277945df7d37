package extraction

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	merchantPrefixRe = regexp.MustCompile(`(?i)^(pos |eftpos |visa |mastercard |paypal \*)`)
	merchantSuffixRe = regexp.MustCompile(`(?i)\s+(pvt|pvt\.?\s*ltd|ltd|llp|inc|corp)\.?$`)
	longNumberRe     = regexp.MustCompile(`\d{6,}`)
	specialCharRe    = regexp.MustCompile(`[*#|]+`)

	merchantCaser = cases.Title(language.English)
)

const maxMerchantLen = 50

// ExtractMerchant takes the first non-empty line of the receipt as the
// probable merchant name and cleans it up for display. Returns nil when
// the line carries no usable name.
func ExtractMerchant(text string) *string {
	line := firstNonEmptyLine(text)
	if line == "" {
		return nil
	}

	name := formatMerchantName(line)
	if name == "" {
		return nil
	}
	return strPtr(name)
}

// formatMerchantName strips terminal noise and title-cases each word.
func formatMerchantName(raw string) string {
	cleaned := merchantPrefixRe.ReplaceAllString(raw, "")
	cleaned = merchantSuffixRe.ReplaceAllString(cleaned, "")
	cleaned = longNumberRe.ReplaceAllString(cleaned, "")
	cleaned = specialCharRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	words := strings.Fields(cleaned)
	for i, word := range words {
		if len(word) > 2 {
			words[i] = merchantCaser.String(strings.ToLower(word))
		} else {
			words[i] = strings.ToUpper(word)
		}
	}

	return truncateAtRune(strings.Join(words, " "), maxMerchantLen)
}
