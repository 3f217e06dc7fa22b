// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Matching engine
	ErrCodeMatchScoreFailed ErrorCode = "MATCH_SCORE_FAILED"
	ErrCodeRankingFailed    ErrorCode = "RANKING_FAILED"
	ErrCodeAssignmentFailed ErrorCode = "ASSIGNMENT_FAILED"
	ErrCodeScheduleInvalid  ErrorCode = "SCHEDULE_INVALID"
	ErrCodeUnknownPolicy    ErrorCode = "UNKNOWN_POLICY"
	ErrCodeProfileNotFound  ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodePostingNotFound  ErrorCode = "POSTING_NOT_FOUND"

	// Data access
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeInvalidQueryType         ErrorCode = "INVALID_QUERY_TYPE"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDuplicateAssignment      ErrorCode = "DUPLICATE_ASSIGNMENT"

	// Search
	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout     ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"

	// Generic
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout         ErrorCode = "TIMEOUT"
	ErrCodeNotFound        ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeValidation      ErrorCode = "VALIDATION_FAILED"
	ErrCodeBusinessRule    ErrorCode = "BUSINESS_RULE_VIOLATION"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ConvertToBPMNError maps a StandardError onto its workflow representation.
func ConvertToBPMNError(err *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(err.Code),
		Message:   err.Message,
		Details:   err.Details,
		Retryable: err.Retryable,
		Retries:   GetRetryCount(err.Code),
		ErrorVariables: map[string]interface{}{
			"errorCategory": GetErrorCategory(err.Code),
		},
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewMatchScoreFailedError wraps an unexpected failure inside pair scoring.
func NewMatchScoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMatchScoreFailed,
		Message:   "Match score calculation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRankingFailedError wraps a candidate-ranking failure.
func NewRankingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRankingFailed,
		Message:   "Candidate ranking failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAssignmentFailedError wraps a failure during greedy pairing.
func NewAssignmentFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAssignmentFailed,
		Message:   "Assignment generation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownPolicyError flags an unrecognized schedule policy name.
func NewUnknownPolicyError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownPolicy,
		Message:   "Unknown schedule match policy",
		Details:   name,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileNotFoundError is a non-retryable lookup miss.
func NewProfileNotFoundError(repID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileNotFound,
		Message:   "Rep profile not found",
		Details:   repID,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionError is a retryable database error.
func NewQueryExecutionError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError is a retryable timeout.
func NewQueryTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timed out",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertError is a retryable insert failure.
func NewDatabaseInsertError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateAssignmentError flags an already-recorded rep/gig pair.
func NewDuplicateAssignmentError(repID, gigID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateAssignment,
		Message:   "Assignment already recorded",
		Details:   fmt.Sprintf("rep=%s gig=%s", repID, gigID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryError is a retryable search-backend error.
func NewSearchQueryError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Candidate search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError is a retryable search timeout.
func NewSearchTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Candidate search timed out",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExternalServiceError wraps a failure from a named upstream service.
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalService,
		Message:   fmt.Sprintf("External service %s failed", service),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"service": service},
		Timestamp: time.Now().UTC(),
	}
}

// NewTimeoutError wraps a timeout from a named upstream service.
func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTimeout,
		Message:   fmt.Sprintf("Operation against %s timed out", service),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"service": service},
		Timestamp: time.Now().UTC(),
	}
}

// NewResourceNotFoundError is a non-retryable lookup miss.
func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError is a non-retryable input problem.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBusinessRuleError is a non-retryable domain violation.
func NewBusinessRuleError(details, rule string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBusinessRule,
		Message:   rule,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Retry / Category Policy
// ==========================

// GetRetryCount returns how many times a failed job carrying this code
// should be retried before it surfaces as a BPMN error.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeQueryTimeout, ErrCodeSearchTimeout, ErrCodeTimeout:
		return 2
	case ErrCodeQueryExecutionFailed, ErrCodeSearchQueryFailed,
		ErrCodeDatabaseInsertFailed, ErrCodeDatabaseConnectionFailed,
		ErrCodeExternalService:
		return 3
	default:
		return 0
	}
}

// GetErrorCategory buckets codes for dashboards and alerting.
func GetErrorCategory(code ErrorCode) string {
	s := string(code)
	switch {
	case strings.HasPrefix(s, "MATCH_") || strings.HasPrefix(s, "RANKING") ||
		strings.HasPrefix(s, "ASSIGNMENT") || strings.HasPrefix(s, "SCHEDULE") ||
		strings.HasPrefix(s, "UNKNOWN_POLICY") || strings.HasPrefix(s, "DUPLICATE"):
		return "matching"
	case strings.HasPrefix(s, "DATABASE") || strings.HasPrefix(s, "QUERY") ||
		strings.HasPrefix(s, "PROFILE") || strings.HasPrefix(s, "POSTING"):
		return "data-access"
	case strings.HasPrefix(s, "SEARCH") || strings.HasPrefix(s, "INDEX"):
		return "search"
	case strings.HasPrefix(s, "VALIDATION") || strings.HasPrefix(s, "INVALID"):
		return "validation"
	default:
		return "infrastructure"
	}
}

// IsRetryable reports whether an arbitrary error should be retried.
func IsRetryable(err error) bool {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Retryable
	}
	return false
}
