package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tessro/spin/internal/kv"
	"github.com/tessro/spin/internal/library"
)

// Error types for common failure scenarios.
var (
	ErrUnknownList     = errors.New("unknown list")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrConfigNotFound  = errors.New("config file not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrClipboard       = errors.New("clipboard unavailable")
)

// SpinError wraps an error with a user-friendly suggestion.
type SpinError struct {
	Err        error
	Suggestion string
}

func (e *SpinError) Error() string {
	return e.Err.Error()
}

func (e *SpinError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &SpinError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's already a SpinError with suggestion
	var spinErr *SpinError
	if errors.As(err, &spinErr) && spinErr.Suggestion != "" {
		return spinErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Storage errors
	if errors.Is(err, kv.ErrCorrupt) {
		return "The stored list is unreadable. Run 'spin <list> clear' to reset it"
	}
	if strings.Contains(errStr, "permission denied") {
		return "Check that the storage directory is writable, or set storage.dir in your config"
	}
	if strings.Contains(errStr, "no space left") || strings.Contains(errStr, "quota") {
		return "The storage volume is full. Free some space and try again"
	}

	// Input errors
	if errors.Is(err, library.ErrEmptyQuery) {
		return "Pass a non-empty search term"
	}
	if errors.Is(err, library.ErrMissingID) {
		return "Pass a track id with --id"
	}
	if errors.Is(err, ErrUnknownList) {
		return "Use one of: search, played, favorite"
	}
	if errors.Is(err, ErrIndexOutOfRange) {
		return "Run 'spin search list' to see valid positions"
	}

	// Clipboard
	if errors.Is(err, ErrClipboard) {
		return "Install xclip, xsel, or wl-clipboard to enable clipboard support"
	}

	// Config errors
	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Run 'spin config init' to create a configuration file"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
