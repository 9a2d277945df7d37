// Package eval provides an evaluation harness for comparing receipt
// extraction strategies (heuristic, AI, or hybrid) against ground-truth
// fixtures.
package eval

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/spendlens/backend/internal/extraction"
)

// GroundTruth is the expected extraction output for one receipt
// fixture. Nil fields mean the field is genuinely absent from the
// receipt and the extractor is expected to return null for it.
type GroundTruth struct {
	Name          string   `json:"name"`
	Context       string   `json:"context"`
	Amount        *float64 `json:"amount"`
	Date          *string  `json:"date"`
	Category      *string  `json:"category"`
	PaymentMethod *string  `json:"payment_method"`
	Description   *string  `json:"description"`
	Merchant      *string  `json:"merchant"`
}

// EvalResult holds per-field outcomes from running one strategy on one
// fixture.
type EvalResult struct {
	Strategy       string
	Fixture        string
	AmountOK       bool
	DateOK         bool
	CategoryOK     bool
	PaymentOK      bool
	DescriptionSim float64
	MerchantSim    float64
	OverallScore   float64
	Duration       time.Duration
	AICalls        int
	Error          string // non-empty if the strategy failed
}

// StrategyFunc is the signature for an extraction strategy.
// Returns: result, AI call count, error.
type StrategyFunc func(ctx context.Context, text string, docCtx extraction.Context) (*extraction.Result, int, error)

// Field weights for the overall score. Amount dominates because a wrong
// total makes the rest of the record useless.
const (
	amountWeight      = 0.30
	dateWeight        = 0.15
	categoryWeight    = 0.20
	paymentWeight     = 0.15
	descriptionWeight = 0.10
	merchantWeight    = 0.10
)

// ComputeMetrics compares one extraction result against ground truth.
func ComputeMetrics(
	strategy string,
	fixture string,
	got *extraction.Result,
	truth *GroundTruth,
	duration time.Duration,
	aiCalls int,
) *EvalResult {
	result := &EvalResult{
		Strategy: strategy,
		Fixture:  fixture,
		Duration: duration,
		AICalls:  aiCalls,
	}

	result.AmountOK = amountMatch(got.Amount, truth.Amount)
	result.DateOK = labelMatch(got.Date, truth.Date)
	result.CategoryOK = labelMatch(got.Category, truth.Category)
	result.PaymentOK = labelMatch(got.PaymentMethod, truth.PaymentMethod)
	result.DescriptionSim = similarity(got.Description, truth.Description)
	result.MerchantSim = similarity(got.Merchant, truth.Merchant)

	result.OverallScore = amountWeight*boolScore(result.AmountOK) +
		dateWeight*boolScore(result.DateOK) +
		categoryWeight*boolScore(result.CategoryOK) +
		paymentWeight*boolScore(result.PaymentOK) +
		descriptionWeight*result.DescriptionSim +
		merchantWeight*result.MerchantSim

	return result
}

func boolScore(ok bool) float64 {
	if ok {
		return 1.0
	}
	return 0.0
}

// amountMatch treats amounts within 0.10 or 1% as equal; a nil on
// either side matches only a nil on the other.
func amountMatch(got, want *float64) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	diff := math.Abs(*got - *want)
	if diff <= 0.10 {
		return true
	}
	return *want != 0 && diff/math.Abs(*want) < 0.01
}

func labelMatch(got, want *string) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	return strings.EqualFold(strings.TrimSpace(*got), strings.TrimSpace(*want))
}

// similarity returns a 0-1 score using normalized Levenshtein distance.
// Both nil counts as a perfect match, one-sided nil as a total miss.
func similarity(got, want *string) float64 {
	if got == nil || want == nil {
		if got == nil && want == nil {
			return 1.0
		}
		return 0.0
	}

	a := strings.ToLower(strings.TrimSpace(*got))
	b := strings.ToLower(strings.TrimSpace(*want))
	if a == b {
		return 1.0
	}

	lenA := utf8.RuneCountInString(a)
	lenB := utf8.RuneCountInString(b)
	if lenA == 0 && lenB == 0 {
		return 1.0
	}

	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}
	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}

// levenshtein computes the edit distance between two strings using the
// single-row optimization.
func levenshtein(a, b string) int {
	runesA := []rune(a)
	runesB := []rune(b)
	la := len(runesA)
	lb := len(runesB)

	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr := make([]int, lb+1)
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if runesA[i-1] == runesB[j-1] {
				cost = 0
			}
			curr[j] = minOf(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev = curr
	}

	return prev[lb]
}

func minOf(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// RunEval executes all strategies against all fixtures and returns the
// per-pair results.
func RunEval(
	ctx context.Context,
	strategies map[string]StrategyFunc,
	fixtures []*Fixture,
) []*EvalResult {
	var results []*EvalResult

	for _, fixture := range fixtures {
		for name, strategy := range strategies {
			start := time.Now()
			got, aiCalls, err := strategy(ctx, fixture.Text, fixture.Context)
			elapsed := time.Since(start)

			if err != nil {
				results = append(results, &EvalResult{
					Strategy: name,
					Fixture:  fixture.Name,
					Duration: elapsed,
					AICalls:  aiCalls,
					Error:    err.Error(),
				})
				continue
			}

			results = append(results, ComputeMetrics(
				name,
				fixture.Name,
				got,
				fixture.GroundTruth,
				elapsed,
				aiCalls,
			))
		}
	}

	return results
}

// PrintSummary outputs a formatted comparison table to an io.Writer.
func PrintSummary(w io.Writer, results []*EvalResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "Strategy\tFixture\tAmt\tDate\tCat\tPay\tDesc~\tMerch~\tScore\tTime\tAI\tError")
	fmt.Fprintln(tw, "--------\t-------\t---\t----\t---\t---\t-----\t------\t-----\t----\t--\t-----")

	for _, r := range results {
		errStr := ""
		if r.Error != "" {
			errStr = truncate(r.Error, 30)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%s\t%d\t%s\n",
			r.Strategy,
			r.Fixture,
			mark(r.AmountOK),
			mark(r.DateOK),
			mark(r.CategoryOK),
			mark(r.PaymentOK),
			r.DescriptionSim,
			r.MerchantSim,
			r.OverallScore,
			r.Duration.Round(time.Millisecond),
			r.AICalls,
			errStr,
		)
	}

	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Strategy Averages ===")

	strategyScores := make(map[string][]float64)
	for _, r := range results {
		if r.Error == "" {
			strategyScores[r.Strategy] = append(strategyScores[r.Strategy], r.OverallScore)
		}
	}

	tw2 := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw2, "Strategy\tAvg Score\tFixtures")
	fmt.Fprintln(tw2, "--------\t---------\t--------")

	for strategy, scores := range strategyScores {
		fmt.Fprintf(tw2, "%s\t%.3f\t%d\n", strategy, avg(scores), len(scores))
	}
	tw2.Flush()
}

func mark(ok bool) string {
	if ok {
		return "ok"
	}
	return "MISS"
}

func avg(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
