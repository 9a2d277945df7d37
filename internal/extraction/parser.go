package extraction

import "strings"

// HeuristicParser is the deterministic, always-succeeding extraction
// path. It holds no state; the same text always yields the same result.
type HeuristicParser struct{}

// NewHeuristicParser creates a heuristic parser.
func NewHeuristicParser() *HeuristicParser {
	return &HeuristicParser{}
}

// Parse runs all field extractors over the raw text and assembles their
// outputs. Fields whose patterns find nothing stay nil; the parser
// itself never fails. Confidence is never set on this path.
func (p *HeuristicParser) Parse(rawText string) *Result {
	if strings.TrimSpace(rawText) == "" {
		return &Result{}
	}

	return &Result{
		Amount:        ExtractAmount(rawText),
		Date:          ExtractDate(rawText),
		Category:      ClassifyCategory(rawText),
		PaymentMethod: ClassifyPaymentMethod(rawText),
		Description:   ExtractDescription(rawText),
		Merchant:      ExtractMerchant(rawText),
	}
}
