package eval

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/spendlens/backend/internal/extraction"
)

func fp(v float64) *float64 { return &v }
func sp(s string) *string   { return &s }

// --- Unit Tests for Metric Functions ---

func TestAmountMatch(t *testing.T) {
	tests := []struct {
		got, want *float64
		match     bool
	}{
		{fp(10.00), fp(10.00), true},
		{fp(10.00), fp(10.05), true},    // within 0.10
		{fp(10.00), fp(10.11), false},   // over 0.10 and over 1%
		{fp(100.00), fp(100.50), true},  // within 1%
		{fp(100.00), fp(102.00), false}, // over 1%
		{nil, nil, true},
		{fp(10.00), nil, false},
		{nil, fp(10.00), false},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			if got := amountMatch(tt.got, tt.want); got != tt.match {
				t.Errorf("amountMatch(%v, %v) = %v, want %v", tt.got, tt.want, got, tt.match)
			}
		})
	}
}

func TestLabelMatch(t *testing.T) {
	tests := []struct {
		got, want *string
		match     bool
	}{
		{sp("2025-01-15"), sp("2025-01-15"), true},
		{sp("2025-01-15"), sp("2025-01-16"), false},
		{sp("Food"), sp("food"), true},
		{sp("  Food  "), sp("Food"), true},
		{nil, nil, true},
		{sp("Food"), nil, false},
		{nil, sp("Food"), false},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			if got := labelMatch(tt.got, tt.want); got != tt.match {
				t.Errorf("labelMatch(%v, %v) = %v, want %v", tt.got, tt.want, got, tt.match)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name      string
		got, want *string
		sim       float64
	}{
		{"identical", sp("Cafe Corner"), sp("Cafe Corner"), 1.0},
		{"case insensitive", sp("CAFE CORNER"), sp("cafe corner"), 1.0},
		{"both nil", nil, nil, 1.0},
		{"one-sided nil", sp("Cafe"), nil, 0.0},
		{"completely different is low", sp("abcd"), sp("wxyz"), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := similarity(tt.got, tt.want); got != tt.sim {
				t.Errorf("similarity = %v, want %v", got, tt.sim)
			}
		})
	}

	// One edit out of five characters.
	got := similarity(sp("corner"), sp("cornet"))
	if got < 0.8 || got >= 1.0 {
		t.Errorf("similarity(corner, cornet) = %v, want in [0.8, 1.0)", got)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestComputeMetricsPerfect(t *testing.T) {
	truth := &GroundTruth{
		Amount:        fp(110),
		Date:          sp("2024-01-12"),
		Category:      sp("Food & Dining"),
		PaymentMethod: sp("Cash"),
		Description:   sp("Cafe Corner"),
		Merchant:      sp("Cafe Corner"),
	}
	got := &extraction.Result{
		Amount:        fp(110),
		Date:          sp("2024-01-12"),
		Category:      sp("Food & Dining"),
		PaymentMethod: sp("Cash"),
		Description:   sp("Cafe Corner"),
		Merchant:      sp("Cafe Corner"),
	}

	r := ComputeMetrics("heuristic", "cafe_receipt", got, truth, time.Millisecond, 0)
	if r.OverallScore != 1.0 {
		t.Errorf("OverallScore = %v, want 1.0", r.OverallScore)
	}
	if !r.AmountOK || !r.DateOK || !r.CategoryOK || !r.PaymentOK {
		t.Errorf("field flags = %+v, want all ok", r)
	}
}

func TestComputeMetricsMisses(t *testing.T) {
	truth := &GroundTruth{
		Amount:   fp(110),
		Category: sp("Salary"),
	}
	got := &extraction.Result{
		Amount: fp(500), // wrong
	}

	r := ComputeMetrics("heuristic", "x", got, truth, time.Millisecond, 0)
	if r.AmountOK {
		t.Error("AmountOK = true for a wrong amount")
	}
	if r.CategoryOK {
		t.Error("CategoryOK = true when extraction returned nil")
	}
	// Date, payment, description, merchant are nil on both sides.
	if !r.DateOK || !r.PaymentOK {
		t.Errorf("both-nil fields must count as matches: %+v", r)
	}
	if r.DescriptionSim != 1.0 || r.MerchantSim != 1.0 {
		t.Errorf("both-nil similarity must be 1.0: %+v", r)
	}
}

// --- Fixture and Harness Tests ---

func TestLoadFixtures(t *testing.T) {
	fixtures, err := LoadFixtures()
	if err != nil {
		t.Fatalf("LoadFixtures: %v", err)
	}
	if len(fixtures) != 5 {
		t.Fatalf("len(fixtures) = %d, want 5", len(fixtures))
	}

	for _, f := range fixtures {
		if strings.TrimSpace(f.Text) == "" {
			t.Errorf("fixture %q has empty text", f.Name)
		}
		if f.GroundTruth == nil || f.GroundTruth.Amount == nil {
			t.Errorf("fixture %q missing ground truth amount", f.Name)
		}
	}

	// The income fixture must carry the income context.
	for _, f := range fixtures {
		if f.Name == "salary_credit" && f.Context != extraction.ContextIncome {
			t.Errorf("salary_credit context = %q, want income", f.Context)
		}
	}
}

func heuristicStrategy(_ context.Context, text string, _ extraction.Context) (*extraction.Result, int, error) {
	return extraction.NewHeuristicParser().Parse(text), 0, nil
}

func TestHeuristicStrategyAgainstFixtures(t *testing.T) {
	fixtures, err := LoadFixtures()
	if err != nil {
		t.Fatalf("LoadFixtures: %v", err)
	}

	results := RunEval(context.Background(), map[string]StrategyFunc{
		"heuristic": heuristicStrategy,
	}, fixtures)

	if len(results) != len(fixtures) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(fixtures))
	}

	var scoreSum float64
	for _, r := range results {
		if r.Error != "" {
			t.Fatalf("fixture %q: strategy error %q", r.Fixture, r.Error)
		}
		if !r.AmountOK {
			t.Errorf("fixture %q: amount missed", r.Fixture)
		}
		if !r.DateOK {
			t.Errorf("fixture %q: date missed", r.Fixture)
		}
		if !r.PaymentOK {
			t.Errorf("fixture %q: payment method missed", r.Fixture)
		}
		// The heuristic tables only cover expense categories, so the
		// income fixture is expected to miss its category.
		if !r.CategoryOK && r.Fixture != "salary_credit" {
			t.Errorf("fixture %q: category missed", r.Fixture)
		}
		scoreSum += r.OverallScore
	}

	if avg := scoreSum / float64(len(results)); avg < 0.9 {
		t.Errorf("average score = %.3f, want >= 0.9", avg)
	}
}

func TestPrintSummary(t *testing.T) {
	results := []*EvalResult{
		{
			Strategy:       "heuristic",
			Fixture:        "cafe_receipt",
			AmountOK:       true,
			DateOK:         true,
			CategoryOK:     true,
			PaymentOK:      true,
			DescriptionSim: 1.0,
			MerchantSim:    1.0,
			OverallScore:   1.0,
			Duration:       3 * time.Millisecond,
		},
		{
			Strategy: "ai",
			Fixture:  "cafe_receipt",
			AICalls:  1,
			Error:    "service unavailable",
		},
	}

	var buf bytes.Buffer
	PrintSummary(&buf, results)
	out := buf.String()

	for _, want := range []string{"Strategy", "cafe_receipt", "heuristic", "Strategy Averages", "service unavailable"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
