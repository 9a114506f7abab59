// Package errors provides standardized error handling for the answer pipeline.
package errors

import (
	"errors"
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
	ErrCodeCatalogLoadFailed ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogEmpty      ErrorCode = "CATALOG_EMPTY"

	ErrCodeEmbeddingFailed  ErrorCode = "EMBEDDING_FAILED"
	ErrCodeIndexBuildFailed ErrorCode = "INDEX_BUILD_FAILED"

	ErrCodeScopeCheckFailed  ErrorCode = "SCOPE_CHECK_FAILED"
	ErrCodeEnrichmentFailed  ErrorCode = "ENRICHMENT_FAILED"
	ErrCodeExtractionFailed  ErrorCode = "PARAMETER_EXTRACTION_FAILED"
	ErrCodeWebSearchFailed   ErrorCode = "WEB_SEARCH_FAILED"
	ErrCodeLLMTimeout        ErrorCode = "LLM_TIMEOUT"
	ErrCodeGenerationFailed  ErrorCode = "LLM_GENERATION_FAILED"
	ErrCodeResponseCacheMiss ErrorCode = "RESPONSE_CACHE_MISS"
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
// 2. Error Constructors
// ==========================

// NewCatalogLoadFailedError creates a retryable catalog load error.
func NewCatalogLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLoadFailed,
		Message:   "Product catalog load error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogEmptyError creates a non-retryable empty catalog error.
func NewCatalogEmptyError(table string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogEmpty,
		Message:   "Product catalog contains no rows",
		Details:   fmt.Sprintf("table: %s", table),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingFailedError creates a retryable embedding backend error.
func NewEmbeddingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingFailed,
		Message:   "Embedding service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexBuildFailedError creates a non-retryable index construction error.
func NewIndexBuildFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexBuildFailed,
		Message:   "Semantic index build error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScopeCheckFailedError creates a scope classification error. The caller
// fails open to in_scope, so this surfaces only in logs.
func NewScopeCheckFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScopeCheckFailed,
		Message:   "Scope classification error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEnrichmentFailedError creates an enrichment error. The caller falls back
// to the original query.
func NewEnrichmentFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEnrichmentFailed,
		Message:   "Context enrichment error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionFailedError creates a parameter extraction error. The caller
// falls back to the default parameter record.
func NewExtractionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionFailed,
		Message:   "Parameter extraction error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWebSearchFailedError creates a web search error. The caller treats it as
// an empty result set, never as content.
func NewWebSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWebSearchFailed,
		Message:   "Web search provider error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMTimeoutError creates an LLM timeout error.
func NewLLMTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "Language model call timeout",
		Details:   "call exceeded the configured deadline",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationFailedError creates a generation error. The caller degrades to
// a fixed apologetic reply.
func NewGenerationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationFailed,
		Message:   "Language model generation error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. User-Facing Messages
// ==========================

// User-visible fallback strings. Failures always degrade to conversational
// Vietnamese text, never to raw error codes.
const (
	MsgOutOfScope = "Xin lỗi, tôi chỉ có thể hỗ trợ các câu hỏi liên quan đến sản phẩm tiêu dùng. Hãy hỏi tôi về các sản phẩm tiêu dùng nhé."

	MsgIntentOutOfScope = "Câu hỏi không thuộc phạm vi của tôi. Hãy hỏi tôi về các sản phẩm tiêu dùng nhé."

	MsgServiceUnavailable = "Xin lỗi, tôi không thể xử lý yêu cầu của bạn lúc này. Vui lòng thử lại sau."

	MsgGenerationFailed = "Xin lỗi, đã xảy ra lỗi khi kết nối đến dịch vụ. Vui lòng thử lại."
)

// UserMessage maps an error code to the natural-language string shown to the
// user when that failure becomes user visible.
func UserMessage(code ErrorCode) string {
	switch code {
	case ErrCodeLLMTimeout, ErrCodeGenerationFailed:
		return MsgGenerationFailed
	default:
		return MsgServiceUnavailable
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// IsRetryable checks if an error code is worth retrying at startup.
// Per-turn pipeline failures are never retried; they degrade immediately.
func IsRetryable(code ErrorCode) bool {
	switch code {
	case ErrCodeCatalogLoadFailed, ErrCodeEmbeddingFailed:
		return true
	}
	return false
}

// CodeOf extracts the error code from any error in a wrap chain. Errors
// from outside this package report UNKNOWN.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrorCode("UNKNOWN")
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "EMBEDDING") || strings.Contains(codeStr, "INDEX"):
		return "INDEX"
	case strings.Contains(codeStr, "LLM") || strings.Contains(codeStr, "SCOPE") ||
		strings.Contains(codeStr, "ENRICHMENT") || strings.Contains(codeStr, "EXTRACTION"):
		return "AI"
	case strings.Contains(codeStr, "WEB"):
		return "SEARCH"
	default:
		return "OTHER"
	}
}
