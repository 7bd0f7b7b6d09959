package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context, creating a SwitchError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *SwitchError {
	if err == nil {
		return nil
	}

	var te *SwitchError
	if errors.As(err, &te) {
		return &SwitchError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       te,
			Context:     te.Context,
			FilePath:    te.FilePath,
			Suggestions: te.Suggestions,
			Recoverable: te.Recoverable,
		}
	}

	return &SwitchError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation,
	}
}

// WrapIO wraps an error as an I/O error
func WrapIO(err error, code, message string) *SwitchError {
	return Wrap(err, ErrorTypeIO, code, message)
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, code, message string) *SwitchError {
	te := Wrap(err, ErrorTypeConfig, code, message)
	if te != nil {
		te.Recoverable = false
	}
	return te
}

// WrapNetwork wraps an error as a network error
func WrapNetwork(err error, code, message string) *SwitchError {
	return Wrap(err, ErrorTypeNetwork, code, message)
}

// FormatErrorWithSuggestions formats an error for the terminal, listing any
// suggestions attached along the chain.
func FormatErrorWithSuggestions(err error) string {
	if err == nil {
		return ""
	}

	result := err.Error()

	var suggestions []string
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		var te *SwitchError
		if errors.As(cur, &te) {
			suggestions = append(suggestions, te.Suggestions...)
			cur = te
		}
	}
	suggestions = dedupe(suggestions)

	if len(suggestions) > 0 {
		result += "\n\nSuggestions:"
		for _, suggestion := range suggestions {
			result += fmt.Sprintf("\n  • %s", suggestion)
		}
	}
	return result
}

// GetErrorContext extracts context information from a SwitchError
func GetErrorContext(err error) map[string]interface{} {
	var te *SwitchError
	if errors.As(err, &te) {
		context := make(map[string]interface{})
		for k, v := range te.Context {
			context[k] = v
		}
		if te.FilePath != "" {
			context["file"] = te.FilePath
		}
		context["type"] = string(te.Type)
		context["code"] = te.Code
		context["recoverable"] = te.Recoverable
		return context
	}

	return map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
