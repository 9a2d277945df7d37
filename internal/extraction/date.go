package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// datePattern pairs a regex with a handler that maps its capture groups
// to (day, month, year) strings. Patterns are tried in order and the
// first match wins.
type datePattern struct {
	re      *regexp.Regexp
	handler func(m []string) (day, month, year string)
}

// The numeric patterns are guarded on both sides so a DD-MM-YYYY scan
// can't bite into the middle of a YYYY-MM-DD date.
var datePatterns = []datePattern{
	{
		re: regexp.MustCompile(`(?:^|[^\d])(\d{1,2})[\-/](\d{1,2})[\-/](\d{2,4})(?:[^\d]|$)`),
		handler: func(m []string) (string, string, string) {
			return m[1], m[2], m[3]
		},
	},
	{
		re: regexp.MustCompile(`(?:^|[^\d])(\d{4})[\-/](\d{1,2})[\-/](\d{1,2})(?:[^\d]|$)`),
		handler: func(m []string) (string, string, string) {
			return m[3], m[2], m[1]
		},
	},
	{
		re: regexp.MustCompile(`(?i)(?:^|[^\d])(\d{1,2})\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?,?\s+(\d{2,4})`),
		handler: func(m []string) (string, string, string) {
			return m[1], monthNumber(m[2]), m[3]
		},
	},
}

var monthNumbers = map[string]string{
	"jan": "1", "feb": "2", "mar": "3", "apr": "4", "may": "5", "jun": "6",
	"jul": "7", "aug": "8", "sep": "9", "oct": "10", "nov": "11", "dec": "12",
}

func monthNumber(abbrev string) string {
	return monthNumbers[strings.ToLower(abbrev)]
}

// ExtractDate finds the first date-like substring in the text and
// normalizes it to YYYY-MM-DD. Two-digit years are expanded into the
// 2000s. Calendar validity is deliberately not checked: an impossible
// day is passed through rather than silently corrected.
func ExtractDate(text string) *string {
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		day, month, year := p.handler(m)
		return strPtr(canonicalDate(day, month, year))
	}
	return nil
}

// canonicalDate zero-pads day and month and expands 2-digit years.
func canonicalDate(day, month, year string) string {
	d, _ := strconv.Atoi(day)
	mo, _ := strconv.Atoi(month)
	if len(year) == 2 {
		year = "20" + year
	}
	return fmt.Sprintf("%s-%02d-%02d", year, mo, d)
}
