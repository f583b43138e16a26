package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrOutOfRange        = errors.New("index out of range")
	ErrNotFound          = errors.New("track not found")
	ErrUnknownDuration   = errors.New("duration not yet known")
	ErrEmptyPlaylist     = errors.New("playlist is empty")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrSourceReleased    = errors.New("source already released")
	ErrNoSource          = errors.New("no source loaded")
	ErrNoFiles           = errors.New("no audio files selected")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// GiflyError wraps an error with a user-friendly suggestion.
type GiflyError struct {
	Err        error
	Suggestion string
}

func (e *GiflyError) Error() string {
	return e.Err.Error()
}

func (e *GiflyError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &GiflyError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var giflyErr *GiflyError
	if errors.As(err, &giflyErr) && giflyErr.Suggestion != "" {
		return giflyErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrUnsupportedFormat) {
		return "Supported formats are mp3, wav, flac and ogg"
	}

	if errors.Is(err, ErrNoFiles) || errors.Is(err, ErrEmptyPlaylist) {
		return "Pass audio files or a directory, e.g. 'gifly ui ~/Music'"
	}

	if errors.Is(err, ErrSourceReleased) {
		return "The playlist was replaced while the track was loading. Try again"
	}

	// Audio device errors
	if strings.Contains(errStr, "speaker") || strings.Contains(errStr, "audio device") ||
		strings.Contains(errStr, "alsa") {
		return "Check that an audio output device is available"
	}

	if strings.Contains(errStr, "no such file") || strings.Contains(errStr, "permission denied") {
		return "Check that the file exists and is readable"
	}

	// Config errors
	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Run 'gifly config init' to create a fresh configuration"
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

// IsNavigation reports whether err is one of the conditions the session
// swallows: out of range, not found, unknown duration or empty playlist.
func IsNavigation(err error) bool {
	return errors.Is(err, ErrOutOfRange) || errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnknownDuration) || errors.Is(err, ErrEmptyPlaylist)
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
