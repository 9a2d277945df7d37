package extraction

import "strings"

// Alias tables map lower-cased free-text labels (from the AI service or
// the heuristic tables) onto the labels the application vocabulary is
// expected to contain. One shared table per context; callers must not
// grow their own copies.
var expenseCategoryAliases = map[string]string{
	"restaurant":        "Food",
	"food & dining":     "Food",
	"dining":            "Food",
	"food":              "Food",
	"cafe":              "Food",
	"groceries":         "Groceries",
	"grocery":           "Groceries",
	"supermarket":       "Groceries",
	"transportation":    "Transport",
	"transport":         "Transport",
	"commute":           "Transport",
	"fuel":              "Transport",
	"shopping":          "Shopping",
	"apparel":           "Shopping",
	"entertainment":     "Entertainment",
	"movies":            "Entertainment",
	"bills":             "Utilities",
	"bills & utilities": "Utilities",
	"utilities":         "Utilities",
	"healthcare":        "Health",
	"medical":           "Health",
	"health":            "Health",
	"education":         "Education",
	"personal care":     "Personal Care",
	"travel":            "Travel",
	"trip":              "Travel",
}

var incomeCategoryAliases = map[string]string{
	"salary":     "Salary",
	"wages":      "Salary",
	"pay":        "Salary",
	"payroll":    "Salary",
	"freelance":  "Freelance",
	"consulting": "Freelance",
	"interest":   "Investments",
	"dividend":   "Investments",
	"investment": "Investments",
	"refund":     "Refunds",
	"cashback":   "Refunds",
	"rent":       "Rental Income",
	"rental":     "Rental Income",
	"gift":       "Gifts",
}

var paymentMethodAliases = map[string]string{
	"debit":         PaymentCard,
	"credit":        PaymentCard,
	"debit card":    PaymentCard,
	"credit card":   PaymentCard,
	"visa":          PaymentCard,
	"mastercard":    PaymentCard,
	"rupay":         PaymentCard,
	"gpay":          PaymentUPI,
	"google pay":    PaymentUPI,
	"phonepe":       PaymentUPI,
	"paytm":         PaymentUPI,
	"bhim":          PaymentUPI,
	"cash":          PaymentCash,
	"neft":          PaymentBankTransfer,
	"imps":          PaymentBankTransfer,
	"rtgs":          PaymentBankTransfer,
	"net banking":   PaymentBankTransfer,
	"netbanking":    PaymentBankTransfer,
	"wire transfer": PaymentBankTransfer,
}

// NormalizeResult maps the category, subcategory, and payment-method
// labels of a result onto the caller's canonical vocabulary. Fields
// that cannot be resolved keep their original raw label: normalization
// narrows or passes through, it never errors and never invents a value
// the caller didn't supply. The input result is not mutated.
func NormalizeResult(r *Result, ctx Context, vocab Vocabulary) *Result {
	out := *r

	aliases := expenseCategoryAliases
	if ctx == ContextIncome {
		aliases = incomeCategoryAliases
	}

	if r.Category != nil {
		out.Category = strPtr(normalizeLabel(*r.Category, aliases, vocab.Categories))
	}
	if r.Subcategory != nil {
		out.Subcategory = strPtr(normalizeLabel(*r.Subcategory, nil, vocab.Subcategories))
	}
	if r.PaymentMethod != nil {
		out.PaymentMethod = strPtr(normalizeLabel(*r.PaymentMethod, paymentMethodAliases, vocab.PaymentMethods))
	}

	return &out
}

// normalizeLabel resolves one raw label: exact alias lookup first, then
// a fuzzy substring match against the canonical list, then pass-through.
func normalizeLabel(raw string, aliases map[string]string, canonical []string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return raw
	}

	if alias, ok := aliases[lower]; ok {
		for _, c := range canonical {
			if strings.EqualFold(c, alias) {
				return c
			}
		}
	}

	for _, c := range canonical {
		cl := strings.ToLower(c)
		if strings.Contains(cl, lower) || strings.Contains(lower, cl) {
			return c
		}
	}

	return raw
}
