package extraction

import "fmt"

// ErrorCode identifies a class of extraction failure.
type ErrorCode string

const (
	ErrAIServiceUnavailable ErrorCode = "AI_SERVICE_UNAVAILABLE"
	ErrAIServiceTimeout     ErrorCode = "AI_SERVICE_TIMEOUT"
	ErrAIInvalidResponse    ErrorCode = "AI_INVALID_RESPONSE"
	ErrAIReportedFailure    ErrorCode = "AI_REPORTED_FAILURE"
	ErrEmptyDocument        ErrorCode = "EMPTY_DOCUMENT"
	ErrJobNotFound          ErrorCode = "JOB_NOT_FOUND"
)

// ExtractionError is a structured error for failures on the AI path and
// the service boundary. The heuristic path never produces one: field
// non-matches are nil fields, not errors.
type ExtractionError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether retrying this operation could succeed.
func (e *ExtractionError) IsRetryable() bool {
	return e.Retryable
}
