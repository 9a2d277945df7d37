// Package extraction turns raw receipt text into structured transaction
// fields, with an AI-first extraction path and a deterministic heuristic
// fallback.
package extraction

// Context selects which normalization vocabulary applies to a result.
type Context string

const (
	ContextExpense Context = "expense"
	ContextIncome  Context = "income"
)

// Path reports which extraction path produced a result.
type Path string

const (
	PathAI        Path = "ai"
	PathHeuristic Path = "heuristic"
)

// Result is the structured record produced by the pipeline. Every field
// is independently optional; nil means the field could not be extracted.
type Result struct {
	Amount        *float64 `json:"amount,omitempty"`
	Date          *string  `json:"date,omitempty"` // YYYY-MM-DD
	Category      *string  `json:"category,omitempty"`
	Subcategory   *string  `json:"subcategory,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Merchant      *string  `json:"merchant,omitempty"`
	// Confidence is only populated by the AI path.
	Confidence *float64 `json:"confidence,omitempty"`
}

// Vocabulary is the caller-supplied set of canonical labels the rest of
// the application understands. Empty slices are valid and leave the
// corresponding fields un-normalized.
type Vocabulary struct {
	Categories     []string
	Subcategories  []string
	PaymentMethods []string
}

// Request carries one extraction invocation through the pipeline.
type Request struct {
	RawText    string
	Context    Context
	Vocabulary Vocabulary
	UserID     string
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }
