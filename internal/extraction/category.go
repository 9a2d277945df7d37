package extraction

import (
	"strings"
)

// categoryEntry holds one category's keyword set. The table is an
// ordered slice, not a map: ties resolve to the first registered
// category, and that ordering is part of the classifier's contract.
type categoryEntry struct {
	name     string
	keywords []string
}

var categoryTable = []categoryEntry{
	{"Food & Dining", []string{
		"restaurant", "cafe", "coffee", "food", "pizza", "burger", "biryani",
		"dosa", "thali", "bakery", "juice", "dining", "kitchen", "meal",
		"swiggy", "zomato", "dominos", "mcdonald", "kfc", "snack", "tea",
	}},
	{"Groceries", []string{
		"grocery", "supermarket", "mart", "kirana", "provision", "vegetable",
		"fruit", "milk", "bigbasket", "dmart", "grofers", "blinkit",
	}},
	{"Transportation", []string{
		"uber", "ola", "taxi", "cab", "auto", "metro", "bus", "train",
		"fuel", "petrol", "diesel", "parking", "toll", "rapido",
	}},
	{"Shopping", []string{
		"amazon", "flipkart", "myntra", "mall", "store", "clothing",
		"apparel", "shoes", "electronics", "fashion", "boutique",
	}},
	{"Entertainment", []string{
		"movie", "cinema", "pvr", "inox", "netflix", "spotify", "game",
		"concert", "bookmyshow", "amusement",
	}},
	{"Bills & Utilities", []string{
		"electricity", "water bill", "gas", "broadband", "internet",
		"recharge", "postpaid", "dth", "wifi", "utility",
	}},
	{"Healthcare", []string{
		"pharmacy", "medical", "hospital", "clinic", "doctor", "medicine",
		"apollo", "diagnostic", "chemist", "lab",
	}},
	{"Education", []string{
		"book", "course", "school", "college", "university", "tuition",
		"academy", "stationery", "exam", "library",
	}},
	{"Personal Care", []string{
		"salon", "spa", "haircut", "gym", "fitness", "parlour", "cosmetic",
	}},
	{"Travel", []string{
		"flight", "airline", "irctc", "makemytrip", "goibibo", "resort",
		"oyo", "lodge", "booking",
	}},
}

// merchantPatterns maps categories to merchant-name fragments. A hit
// inside the first line of the receipt (the probable merchant name) is
// the strongest signal available and earns a flat bonus.
var merchantPatterns = []categoryEntry{
	{"Food & Dining", []string{
		"cafe", "restaurant", "bakery", "dhaba", "cafe coffee day", "ccd",
		"barbeque", "haldiram", "udupi", "biryani",
	}},
	{"Groceries", []string{
		"dmart", "big bazaar", "bigbasket", "reliance fresh", "supermarket",
		"more ", "spencer",
	}},
	{"Transportation", []string{"uber", "ola", "indian oil", "bharat petroleum", "hp petrol"}},
	{"Entertainment", []string{"pvr", "inox", "cinepolis"}},
	{"Healthcare", []string{"apollo", "medplus", "pharmacy", "netmeds"}},
	{"Shopping", []string{"lifestyle", "pantaloons", "westside", "reliance trends"}},
	{"Travel", []string{"oyo", "treebo", "fabhotel"}},
}

const (
	keywordScore      = 1.0
	wordBoundaryBonus = 0.5
	merchantLineBonus = 3.0
)

// educationGuards are the corroborating terms required before an
// Education win is accepted. Generic keyword overlap ("book") produces
// too many false positives otherwise.
var educationGuards = []string{"school", "college", "university", "tuition", "academy"}

// ClassifyCategory scores the receipt text against the keyword and
// merchant tables and returns the winning category label, or nil when
// nothing scores above zero.
func ClassifyCategory(text string) *string {
	scores := scoreCategories(text)

	winner, score := resolveWinner(scores, nil)
	if winner == "Education" && !hasEducationGuard(text) {
		winner, score = resolveWinner(scores, map[string]bool{"Education": true})
	}
	if score <= 0 {
		return nil
	}
	return strPtr(winner)
}

func scoreCategories(text string) map[string]float64 {
	lower := strings.ToLower(text)
	scores := make(map[string]float64, len(categoryTable))

	for _, entry := range categoryTable {
		for _, kw := range entry.keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			scores[entry.name] += keywordScore
			// A trailing word boundary signals a clean token, not a
			// partial overlap inside a longer word.
			if strings.Contains(lower, kw+" ") {
				scores[entry.name] += wordBoundaryBonus
			}
		}
	}

	if merchant := firstNonEmptyLine(lower); merchant != "" {
		for _, entry := range merchantPatterns {
			for _, pattern := range entry.keywords {
				if strings.Contains(merchant, pattern) {
					scores[entry.name] += merchantLineBonus
				}
			}
		}
	}

	return scores
}

// resolveWinner walks the table in registration order so that ties go
// to the first registered category.
func resolveWinner(scores map[string]float64, exclude map[string]bool) (string, float64) {
	var winner string
	var best float64
	for _, entry := range categoryTable {
		if exclude[entry.name] {
			continue
		}
		if s := scores[entry.name]; s > best {
			winner, best = entry.name, s
		}
	}
	return winner, best
}

func hasEducationGuard(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range educationGuards {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func firstNonEmptyLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
