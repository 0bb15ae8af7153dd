package errors

import (
	stderrors "errors"
	"fmt"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails returns a copy of the error carrying extra context, so the
// predefined error values stay immutable.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithMessage returns a copy of the error with a more specific message.
func (e *AppError) WithMessage(message string) *AppError {
	clone := *e
	clone.Message = message
	return &clone
}

// Wrap attaches an AppError code to an underlying cause. The cause is
// recoverable via errors.Unwrap.
func Wrap(app *AppError, cause error) error {
	if cause == nil {
		return app
	}
	return &wrappedError{app: app, cause: cause}
}

type wrappedError struct {
	app   *AppError
	cause error
}

func (w *wrappedError) Error() string {
	return fmt.Sprintf("%s: %v", w.app.Error(), w.cause)
}

func (w *wrappedError) Unwrap() error { return w.cause }

// As lets errors.As find the AppError inside a wrapped chain.
func (w *wrappedError) As(target interface{}) bool {
	if t, ok := target.(**AppError); ok {
		*t = w.app
		return true
	}
	return false
}

// IsCode reports whether err carries the same code as target, looking
// through wrapped chains.
func IsCode(err error, target *AppError) bool {
	if err == nil || target == nil {
		return false
	}
	var app *AppError
	if stderrors.As(err, &app) {
		return app.Code == target.Code
	}
	return false
}

// FromError extracts the AppError from err, or nil when err carries none.
func FromError(err error) *AppError {
	var app *AppError
	if stderrors.As(err, &app) {
		return app
	}
	return nil
}
