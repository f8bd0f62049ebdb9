package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError - typed error surfaced to API clients.
// Code carries the HTTP status, Reason a stable machine-readable value.
type AppError struct {
	Code    int               `json:"code"`
	Reason  string            `json:"reason"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s %v", e.Reason, e.Message, e.Fields)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// Is matches two AppErrors by reason, so that copies produced by WithFields
// and WithMessage still satisfy errors.Is against the sentinel they came from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Reason == t.Reason
}

func New(reason, message string, code int) *AppError {
	return &AppError{
		Code:    code,
		Reason:  reason,
		Message: message,
	}
}

// WithFields returns a copy carrying per-field messages. Sentinels are never mutated.
func (e *AppError) WithFields(fields map[string]string) *AppError {
	cp := *e
	cp.Fields = fields
	return &cp
}

// WithMessage returns a copy with a different client-facing message.
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

// NewValidationError - helper for a VALIDATION_ERROR with field messages
func NewValidationError(fields map[string]string) *AppError {
	return ErrValidation.WithFields(fields)
}

// As unwraps err into an *AppError when it is (or wraps) one.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is any of the entity not-found errors.
func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == http.StatusNotFound
}
