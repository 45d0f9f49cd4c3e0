package utils

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeValidationError   ErrorCode = "VALIDATION_ERROR"
	ErrorCodeInvalidURL        ErrorCode = "INVALID_URL"
	ErrorCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrorCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCodeExtractionFailed  ErrorCode = "EXTRACTION_FAILED"
	ErrorCodeExtractionTimeout ErrorCode = "EXTRACTION_TIMEOUT"
	ErrorCodeOutputTooLarge    ErrorCode = "OUTPUT_TOO_LARGE"
	ErrorCodeInvalidToolOutput ErrorCode = "INVALID_TOOL_OUTPUT"
	ErrorCodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func NewErrorWithDetails(code ErrorCode, message string, statusCode int, details map[string]interface{}) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Common error constructors
func NewValidationError(message string, details map[string]interface{}) *AppError {
	return NewErrorWithDetails(ErrorCodeValidationError, message, http.StatusBadRequest, details)
}

func NewInvalidURLError(url string) *AppError {
	return NewErrorWithDetails(
		ErrorCodeInvalidURL,
		"The provided URL must be an absolute http or https URL",
		http.StatusBadRequest,
		map[string]interface{}{
			"provided": url,
		},
	)
}

func NewUnauthorizedError() *AppError {
	return NewError(
		ErrorCodeUnauthorized,
		"Invalid or missing authentication",
		http.StatusUnauthorized,
	)
}

func NewRateLimitError() *AppError {
	return NewError(
		ErrorCodeRateLimitExceeded,
		"Too many requests",
		http.StatusTooManyRequests,
	)
}

// NewExtractionError reports a non-zero yt-dlp exit; stderr is the tool's
// own diagnostic, useful to the front-end (e.g. "Video unavailable").
func NewExtractionError(stderr string) *AppError {
	details := map[string]interface{}{}
	if stderr != "" {
		details["stderr"] = stderr
	}
	return NewErrorWithDetails(
		ErrorCodeExtractionFailed,
		"yt-dlp failed to extract metadata",
		http.StatusBadGateway,
		details,
	)
}

func NewExtractionTimeoutError() *AppError {
	return NewError(
		ErrorCodeExtractionTimeout,
		"yt-dlp did not finish in time",
		http.StatusGatewayTimeout,
	)
}

func NewOutputTooLargeError() *AppError {
	return NewError(
		ErrorCodeOutputTooLarge,
		"yt-dlp output exceeded the configured limit",
		http.StatusBadGateway,
	)
}

func NewInvalidToolOutputError() *AppError {
	return NewError(
		ErrorCodeInvalidToolOutput,
		"yt-dlp returned output that could not be parsed",
		http.StatusBadGateway,
	)
}

func NewInternalError() *AppError {
	return NewError(
		ErrorCodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
}
