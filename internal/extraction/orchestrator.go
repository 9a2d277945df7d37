package extraction

import (
	"context"
	"log"
	"strings"
)

// Orchestrator decides the extraction path for each request: one AI
// attempt when a service is configured, then the heuristic parser on
// any failure. The two results are never merged: it is one path or
// the other per attempt, and the AI call is never retried.
type Orchestrator struct {
	ai        StructuredExtractor
	heuristic *HeuristicParser
}

// NewOrchestrator creates an orchestrator. ai may be nil, in which case
// every request goes straight to the heuristic path.
func NewOrchestrator(ai StructuredExtractor) *Orchestrator {
	return &Orchestrator{
		ai:        ai,
		heuristic: NewHeuristicParser(),
	}
}

// Extract runs one extraction and reports which path produced the
// result. It never returns an error: an empty document yields the
// all-null result, and AI failures are absorbed by the fallback.
// The returned result is already normalized against the request's
// vocabulary.
func (o *Orchestrator) Extract(ctx context.Context, req Request) (*Result, Path) {
	if strings.TrimSpace(req.RawText) == "" {
		return &Result{}, PathHeuristic
	}

	if o.ai != nil {
		result, err := o.ai.Extract(ctx, req)
		if err == nil && result != nil {
			return NormalizeResult(result, req.Context, req.Vocabulary), PathAI
		}
		log.Printf("[orchestrator] AI extraction failed, falling back to heuristics: %v", err)
	}

	result := o.heuristic.Parse(req.RawText)
	return NormalizeResult(result, req.Context, req.Vocabulary), PathHeuristic
}
