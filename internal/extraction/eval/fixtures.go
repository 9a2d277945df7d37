package eval

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/spendlens/backend/internal/extraction"
)

//go:embed fixtures/*.txt fixtures/*.json
var fixtureFS embed.FS

// Fixture bundles receipt text with ground truth for evaluation. Text
// simulates the output of PDF or OCR text extraction.
type Fixture struct {
	Name        string
	Text        string
	Context     extraction.Context
	GroundTruth *GroundTruth
}

var fixtureNames = []string{
	"cafe_receipt",
	"grocery_receipt",
	"ride_invoice",
	"pharmacy_receipt",
	"salary_credit",
}

// LoadFixtures loads all embedded fixture pairs (txt + json).
func LoadFixtures() ([]*Fixture, error) {
	var fixtures []*Fixture
	for _, name := range fixtureNames {
		f, err := loadFixture(name)
		if err != nil {
			return nil, fmt.Errorf("load fixture %q: %w", name, err)
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

func loadFixture(name string) (*Fixture, error) {
	textBytes, err := fixtureFS.ReadFile("fixtures/" + name + ".txt")
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	jsonBytes, err := fixtureFS.ReadFile("fixtures/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("read ground truth: %w", err)
	}

	var gt GroundTruth
	if err := json.Unmarshal(jsonBytes, &gt); err != nil {
		return nil, fmt.Errorf("parse ground truth: %w", err)
	}

	docCtx := extraction.ContextExpense
	if gt.Context == string(extraction.ContextIncome) {
		docCtx = extraction.ContextIncome
	}

	return &Fixture{
		Name:        name,
		Text:        string(textBytes),
		Context:     docCtx,
		GroundTruth: &gt,
	}, nil
}
