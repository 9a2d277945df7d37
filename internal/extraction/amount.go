package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// Currency and number fragments shared by the amount patterns. "rs" and
// "inr" need their own boundaries so they don't fire inside other words.
// moneyDec is the decimal-only variant used where no currency marker
// anchors the match; a bare integer there is as likely a date fragment
// or a quantity as an amount.
const (
	curBefore = `(?:₹|\$|€|£|rs\.?|inr)`
	curAfter  = `(?:₹|\$|€|£|rs\.?|inr)`
	moneyNum  = `(\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)`
	moneyDec  = `(\d{1,3}(?:,\d{3})+\.\d{1,2}|\d+\.\d{1,2})`
)

// amountClass is one priority tier of total-detection patterns. Classes
// are evaluated strictly in order: a match in an earlier class always
// wins over any match in a later one, regardless of text position.
// A class with excludeLine set is matched line by line so that labelled
// non-total lines (subtotal, tax) can be skipped.
type amountClass struct {
	name        string
	patterns    []*regexp.Regexp
	excludeLine *regexp.Regexp
}

// subtotalLineRe catches the spaced and hyphenated subtotal spellings,
// whose trailing "total" would otherwise satisfy the labelled classes'
// \btotal\b.
var subtotalLineRe = regexp.MustCompile(`(?i)sub\s*[\-]?total`)

var amountClasses = []amountClass{
	{
		name: "total",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\btotal\b\s*:?\s*` + curBefore + `\s*` + moneyNum),
			regexp.MustCompile(`(?i)\btotal\b\s*:?\s*` + moneyNum + `\s*` + curAfter),
		},
		excludeLine: subtotalLineRe,
	},
	{
		name: "amount-due",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:amount\s+to\s+pay|amount\s+due|payable|\bdue\b)\s*:?\s*` + curBefore + `\s*` + moneyNum),
			// Without a currency marker the number must carry a decimal
			// part, so "due 12/01/2024" never yields an amount of 12.
			regexp.MustCompile(`(?i)(?:amount\s+to\s+pay|amount\s+due|payable|\bdue\b)\s*:?\s*` + moneyDec + `(?:[^\d/\-]|$)`),
		},
		excludeLine: subtotalLineRe,
	},
	{
		name: "grand-total",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:grand|net)\s+total\s*:?\s*` + curBefore + `?\s*` + moneyNum),
		},
		excludeLine: subtotalLineRe,
	},
	{
		name: "final-amount",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)final\s+(?:amount|total)\s*:?\s*` + curBefore + `?\s*` + moneyNum),
		},
		excludeLine: subtotalLineRe,
	},
	{
		name: "any-currency",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:₹|\$|€|£|\brs\.?|\binr\b)\s*` + moneyNum),
			regexp.MustCompile(`(?i)` + moneyNum + `\s*(?:₹|\binr\b)`),
		},
		// A subtotal or tax amount is never the receipt total on its
		// own; leave those lines to the derived-sum fallback.
		excludeLine: regexp.MustCompile(`(?i)sub\s*[\-]?total|\btax\b`),
	},
}

var (
	subtotalAmountRe = regexp.MustCompile(`(?i)sub\s*[\-]?total\b(?:\s*\([^)]*\))?\s*:?\s*` + curBefore + `?\s*` + moneyNum)
	taxAmountRe      = regexp.MustCompile(`(?i)\btax\b(?:\s*\([^)]*\))?\s*:?\s*` + curBefore + `?\s*` + moneyNum)
	bareTotalRe      = regexp.MustCompile(`(?i)\btotal\b\s*:?\s+(\d+(?:\.\d{1,2})?)`)
)

// ExtractAmount finds the most likely transaction total in raw receipt
// text. It walks the priority-ordered pattern classes first, then falls
// back to summing a subtotal and tax line, then to a bare "TOTAL n"
// match with no currency marker at all. It never fails; when nothing
// matches the result is nil.
func ExtractAmount(text string) *float64 {
	for _, class := range amountClasses {
		if v, ok := class.match(text); ok {
			return floatPtr(v)
		}
	}

	// No labelled or currency-marked amount: derive subtotal + tax.
	if sub, ok := matchMoney(subtotalAmountRe, text); ok {
		if tax, ok := matchMoney(taxAmountRe, text); ok {
			return floatPtr(sub + tax)
		}
	}

	if v, ok := matchMoney(bareTotalRe, text); ok {
		return floatPtr(v)
	}

	return nil
}

func (c amountClass) match(text string) (float64, bool) {
	if c.excludeLine == nil {
		for _, re := range c.patterns {
			if v, ok := matchMoney(re, text); ok {
				return v, true
			}
		}
		return 0, false
	}

	for _, line := range strings.Split(text, "\n") {
		if c.excludeLine.MatchString(line) {
			continue
		}
		for _, re := range c.patterns {
			if v, ok := matchMoney(re, line); ok {
				return v, true
			}
		}
	}
	return 0, false
}

func matchMoney(re *regexp.Regexp, text string) (float64, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return parseMoney(m[1])
}

// parseMoney parses a matched number, dropping thousands separators.
func parseMoney(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
