package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultAITimeout bounds a single structured-extraction call. The
// orchestrator treats expiry as a failure and falls back; it never
// retries the call.
const DefaultAITimeout = 15 * time.Second

// StructuredExtractor is the boundary to the external AI extraction
// service. Implementations must honor the request context and return
// an error (never a partial result) when extraction cannot complete.
type StructuredExtractor interface {
	Extract(ctx context.Context, req Request) (*Result, error)
}

// AIClient is an HTTP client for the structured AI extraction service.
type AIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAIClient creates a client for the AI extraction service.
func NewAIClient(baseURL string, timeout time.Duration) *AIClient {
	if timeout <= 0 {
		timeout = DefaultAITimeout
	}
	return &AIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// aiExtractRequest is the wire format sent to the AI service.
type aiExtractRequest struct {
	RawText    string   `json:"raw_text"`
	Context    string   `json:"context"`
	Categories []string `json:"categories"`
	UserID     string   `json:"user_id"`
}

// aiExtractResponse is the wire format returned by the AI service.
type aiExtractResponse struct {
	Success bool    `json:"success"`
	Data    *Result `json:"data,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// AIHealthResponse reports the AI service's readiness.
type AIHealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelName   string `json:"model_name"`
}

// Extract sends raw receipt text for structured extraction. Any
// transport, decode, or reported failure comes back as an
// *ExtractionError so the orchestrator can fall back cleanly.
func (c *AIClient) Extract(ctx context.Context, req Request) (*Result, error) {
	payload := aiExtractRequest{
		RawText:    req.RawText,
		Context:    string(req.Context),
		Categories: req.Vocabulary.Categories,
		UserID:     req.UserID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &ExtractionError{Code: ErrAIInvalidResponse, Message: "encode request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract", bytes.NewReader(body))
	if err != nil {
		return nil, &ExtractionError{Code: ErrAIServiceUnavailable, Message: "create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		code := ErrAIServiceUnavailable
		var urlErr interface{ Timeout() bool }
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			code = ErrAIServiceTimeout
		}
		return nil, &ExtractionError{Code: code, Message: "execute request", Retryable: true, Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExtractionError{Code: ErrAIInvalidResponse, Message: "read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ExtractionError{
			Code:      ErrAIServiceUnavailable,
			Message:   fmt.Sprintf("status %d: %s", resp.StatusCode, string(respBody)),
			Retryable: resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests,
		}
	}

	var result aiExtractResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &ExtractionError{Code: ErrAIInvalidResponse, Message: "decode response", Cause: err}
	}

	if !result.Success || result.Data == nil {
		msg := result.Error
		if msg == "" {
			msg = "service reported failure without detail"
		}
		return nil, &ExtractionError{Code: ErrAIReportedFailure, Message: msg}
	}

	return result.Data, nil
}

// HealthCheck checks if the AI service is ready to serve extractions.
func (c *AIClient) HealthCheck(ctx context.Context) (*AIHealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ExtractionError{Code: ErrAIServiceUnavailable, Message: "health check", Retryable: true, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ExtractionError{
			Code:      ErrAIServiceUnavailable,
			Message:   fmt.Sprintf("health check failed: status %d, body: %s", resp.StatusCode, string(body)),
			Retryable: true,
		}
	}

	var health AIHealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &health, nil
}
