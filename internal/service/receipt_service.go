// Package service exposes receipt extraction over HTTP JSON.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/extraction"
)

// jobTTL bounds how long finished async jobs stay pollable.
const jobTTL = time.Hour

// asyncJobTimeout bounds one background extraction end to end.
const asyncJobTimeout = 2 * time.Minute

// ReceiptService handles receipt extraction requests: synchronous text
// and PDF extraction, async jobs for multi-page PDFs, and health.
type ReceiptService struct {
	orchestrator *extraction.Orchestrator
	jobs         *extraction.JobStore
	ai           *extraction.AIClient // nil when no AI service is configured
}

// NewReceiptService creates the service. ai may be nil.
func NewReceiptService(orchestrator *extraction.Orchestrator, ai *extraction.AIClient) *ReceiptService {
	return &ReceiptService{
		orchestrator: orchestrator,
		jobs:         extraction.NewJobStore(jobTTL),
		ai:           ai,
	}
}

// Close releases background resources.
func (s *ReceiptService) Close() {
	s.jobs.Stop()
}

// Register mounts the service's routes on mux.
func (s *ReceiptService) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/extract", s.handleExtract)
	mux.HandleFunc("GET /v1/jobs/{id}", s.handleGetJob)
	mux.HandleFunc("GET /healthz", s.handleHealth)
}

type extractRequest struct {
	RawText        string   `json:"raw_text,omitempty"`
	DocumentData   []byte   `json:"document_data,omitempty"` // base64 in JSON
	Filename       string   `json:"filename,omitempty"`
	Context        string   `json:"context,omitempty"`
	Categories     []string `json:"categories,omitempty"`
	Subcategories  []string `json:"subcategories,omitempty"`
	PaymentMethods []string `json:"payment_methods,omitempty"`
	UserID         string   `json:"user_id,omitempty"`
	Async          bool     `json:"async,omitempty"`
}

type extractResponse struct {
	Result *extraction.Result   `json:"result,omitempty"`
	Path   extraction.Path      `json:"path,omitempty"`
	Status extraction.JobStatus `json:"status"`
	JobID  string               `json:"job_id,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// handleExtract runs one extraction. Multi-page PDF uploads (or an
// explicit async flag on a PDF) go through the job store; everything
// else is answered inline.
func (s *ReceiptService) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	if req.RawText == "" && len(req.DocumentData) == 0 {
		writeError(w, http.StatusBadRequest, &extraction.ExtractionError{
			Code:    extraction.ErrEmptyDocument,
			Message: "raw_text or document_data is required",
		})
		return
	}

	exReq := extraction.Request{
		RawText: req.RawText,
		Context: parseContext(req.Context),
		Vocabulary: extraction.Vocabulary{
			Categories:     req.Categories,
			Subcategories:  req.Subcategories,
			PaymentMethods: req.PaymentMethods,
		},
		UserID: req.UserID,
	}

	if len(req.DocumentData) > 0 && extraction.IsPDF(req.DocumentData) {
		if req.Async || extraction.ShouldProcessAsync(req.DocumentData) {
			s.startJob(w, req, exReq)
			return
		}
		exReq.RawText = pdfText(req.DocumentData)
	}

	result, path := s.orchestrator.Extract(r.Context(), exReq)
	writeJSON(w, http.StatusOK, extractResponse{
		Result: result,
		Path:   path,
		Status: extraction.JobCompleted,
	})
}

// startJob registers an async job and answers with its ID. The actual
// extraction happens on a background goroutine against a fresh context
// so it survives the upload request.
func (s *ReceiptService) startJob(w http.ResponseWriter, req extractRequest, exReq extraction.Request) {
	job := &extraction.Job{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Status:    extraction.JobPending,
		Context:   exReq.Context,
		Filename:  req.Filename,
		CreatedAt: time.Now(),
	}
	if err := s.jobs.Create(job); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	go s.runJob(job, req.DocumentData, exReq)

	writeJSON(w, http.StatusAccepted, extractResponse{
		JobID:  job.ID,
		Status: extraction.JobProcessing,
	})
}

func (s *ReceiptService) runJob(job *extraction.Job, data []byte, exReq extraction.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), asyncJobTimeout)
	defer cancel()

	// Work on copies so concurrent polls never observe a half-written
	// job; Update swaps the stored pointer under the store's lock.
	processing := *job
	processing.Status = extraction.JobProcessing
	if err := s.jobs.Update(&processing); err != nil {
		log.Printf("[receipt-service] update job %s: %v", job.ID, err)
		return
	}

	exReq.RawText = pdfText(data)
	result, path := s.orchestrator.Extract(ctx, exReq)

	finished := processing
	finished.Status = extraction.JobCompleted
	finished.Result = result
	finished.Path = path
	if err := s.jobs.Update(&finished); err != nil {
		log.Printf("[receipt-service] update job %s: %v", job.ID, err)
	}
}

// handleGetJob reports the status (and, when finished, the result) of
// an async extraction job.
func (s *ReceiptService) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

type healthResponse struct {
	Status string                       `json:"status"`
	AI     *extraction.AIHealthResponse `json:"ai,omitempty"`
	AIErr  string                       `json:"ai_error,omitempty"`
}

// handleHealth reports server liveness and, when configured, the AI
// sidecar's readiness. The server is healthy even when the AI service
// is down: extraction degrades to the heuristic path.
func (s *ReceiptService) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if s.ai != nil {
		health, err := s.ai.HealthCheck(r.Context())
		if err != nil {
			resp.AIErr = err.Error()
		} else {
			resp.AI = health
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// pdfText pulls text from a PDF upload. A scanned or unreadable PDF
// yields empty text, which the orchestrator answers with the all-null
// result.
func pdfText(data []byte) string {
	analysis := extraction.AnalyzeReceiptPDF(data)
	if analysis.Err != nil {
		log.Printf("[receipt-service] PDF analysis failed: %v", analysis.Err)
		return ""
	}
	if analysis.IsScanned {
		return ""
	}
	return analysis.Text
}

func parseContext(s string) extraction.Context {
	if s == string(extraction.ContextIncome) {
		return extraction.ContextIncome
	}
	return extraction.ContextExpense
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[receipt-service] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var extErr *extraction.ExtractionError
	if errors.As(err, &extErr) {
		resp.Code = string(extErr.Code)
	}
	writeJSON(w, status, resp)
}
