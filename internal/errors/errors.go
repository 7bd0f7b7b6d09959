// Package errors defines the structured error type used by the lwcswitch
// command layer. The lookup core never returns errors; these cover bad
// arguments, configuration problems and server failures.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Error codes.
const (
	ErrCodeInvalidArgument = "ERR_INVALID_ARGUMENT"
	ErrCodeInvalidFormat   = "ERR_INVALID_FORMAT"
	ErrCodeInvalidPath     = "ERR_INVALID_PATH"
	ErrCodeSurfaceDisabled = "ERR_SURFACE_DISABLED"
	ErrCodeConfigLoad      = "ERR_CONFIG_LOAD"
	ErrCodeConfigInvalid   = "ERR_CONFIG_INVALID"
	ErrCodeWatchFailed     = "ERR_WATCH_FAILED"
	ErrCodeServerFailed    = "ERR_SERVER_FAILED"
	ErrCodeRenderFailed    = "ERR_RENDER_FAILED"
	ErrCodeInternalError   = "ERR_INTERNAL"
)

// SwitchError is a structured error type with context.
type SwitchError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	FilePath    string
	Suggestions []string
	Recoverable bool
}

// Error implements the error interface.
func (e *SwitchError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *SwitchError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison by type and code.
func (e *SwitchError) Is(target error) bool {
	var t *SwitchError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *SwitchError) WithContext(key string, value interface{}) *SwitchError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithPath records the file the error is about.
func (e *SwitchError) WithPath(path string) *SwitchError {
	e.FilePath = path

	return e
}

// WithSuggestions attaches hints shown under the error message.
func (e *SwitchError) WithSuggestions(suggestions ...string) *SwitchError {
	e.Suggestions = append(e.Suggestions, suggestions...)

	return e
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *SwitchError {
	return &SwitchError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *SwitchError {
	return &SwitchError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *SwitchError {
	return &SwitchError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrInvalidPath reports an unusable file argument.
func ErrInvalidPath(path string, cause error) *SwitchError {
	return &SwitchError{
		Type:        ErrorTypeValidation,
		Code:        ErrCodeInvalidPath,
		Message:     "invalid file path",
		Cause:       cause,
		FilePath:    path,
		Recoverable: true,
	}
}

// ErrSurfaceDisabled reports that a host surface is switched off in the
// configuration.
func ErrSurfaceDisabled(surface, key string) *SwitchError {
	return NewConfigError(ErrCodeSurfaceDisabled, surface+" is disabled").
		WithContext("key", key).
		WithSuggestions(fmt.Sprintf("set %s: true in .lwcswitch.yml", key))
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var te *SwitchError
	if errors.As(err, &te) {
		return te.Recoverable
	}

	return false
}

// HasCode reports whether err is a SwitchError with the given code.
func HasCode(err error, code string) bool {
	var te *SwitchError
	if errors.As(err, &te) {
		return te.Code == code
	}

	return false
}
