package errors

import "fmt"

// Error codes
const (
	CodeAppError   = "APP_ERROR"
	CodeAuth       = "AUTH_ERROR"
	CodeAPIError   = "API_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeAI         = "AI_ERROR"
	CodeMedia      = "MEDIA_ERROR"
	CodeQuota      = "QUOTA_ERROR"
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(message, code string, statusCode int, context map[string]any) *AppError {
	return &AppError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// AuthError is returned when the video platform rejects the caller's
// credential. Message carries the platform's own error text.
type AuthError struct {
	*AppError
	PlatformCode int
}

func NewAuthError(message string, platformCode int) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeAuth,
			StatusCode: 401,
			Context: map[string]any{
				"platform_code": platformCode,
			},
		},
		PlatformCode: platformCode,
	}
}

type APIError struct {
	*AppError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

type ValidationError struct {
	*AppError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// AIError wraps a failed generative call. Operation names the call site
// (e.g. "title_variants"), Provider the backend that failed.
type AIError struct {
	*AppError
	Operation string
	Provider  string
}

func NewAIError(message, operation, provider string, cause error) *AIError {
	return &AIError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeAI,
			StatusCode: 502,
			Context: map[string]any{
				"operation": operation,
				"provider":  provider,
			},
			Cause: cause,
		},
		Operation: operation,
		Provider:  provider,
	}
}

type MediaError struct {
	*AppError
	Kind string
}

func NewMediaError(message, kind string, cause error) *MediaError {
	return &MediaError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeMedia,
			StatusCode: 502,
			Context: map[string]any{
				"kind": kind,
			},
			Cause: cause,
		},
		Kind: kind,
	}
}

type QuotaError struct {
	*APIError
	Used      int
	Limit     int
	Requested int
}

func NewQuotaError(used, limit, requested int) *QuotaError {
	return &QuotaError{
		APIError: &APIError{
			AppError: &AppError{
				Message:    fmt.Sprintf("platform quota exceeded: used %d/%d (requested %d more)", used, limit, requested),
				Code:       CodeQuota,
				StatusCode: 429,
				Context: map[string]any{
					"used":      used,
					"limit":     limit,
					"requested": requested,
				},
			},
		},
		Used:      used,
		Limit:     limit,
		Requested: requested,
	}
}

// Base returns the AppError carried by err or any error it wraps.
func Base(err error) (*AppError, bool) {
	for err != nil {
		switch e := err.(type) {
		case *AppError:
			return e, true
		case *AuthError:
			return e.AppError, true
		case *APIError:
			return e.AppError, true
		case *QuotaError:
			return e.AppError, true
		case *ValidationError:
			return e.AppError, true
		case *AIError:
			return e.AppError, true
		case *MediaError:
			return e.AppError, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
