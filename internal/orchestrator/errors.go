package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for different categories of failures
var (
	ErrConfigurationInvalid = errors.New("configuration error")
	ErrStateInvalid         = errors.New("state error")
	ErrOutputFailed         = errors.New("output error")
	ErrValidationFailed     = errors.New("validation error")
	ErrTerminalRequired     = errors.New("terminal required")
)

// ImagineError represents a structured error with actionable guidance
type ImagineError struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *ImagineError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *ImagineError) Unwrap() error {
	return e.Cause
}

// Is matches the error category so errors.Is(err, ErrOutputFailed) works
func (e *ImagineError) Is(target error) bool {
	return e.Type == target
}

// Error constructors with actionable guidance

func NewConfigurationError(message string, cause error) *ImagineError {
	guidance := "Check your configuration file syntax. " +
		"Use 'imagine --config /path/to/config.toml' to specify a different config file."

	if cause != nil && strings.Contains(cause.Error(), "permission") {
		guidance = "Check file permissions for your configuration directory. " +
			"Ensure you have read access to ~/.config/imagine/"
	} else if cause != nil && strings.Contains(cause.Error(), "target") {
		guidance = "Set target to 'clipboard', 'stdout', or 'file:/path/to/file'."
	} else if cause != nil && strings.Contains(cause.Error(), "format") {
		guidance = "copied_format and error_format must be valid Go templates, " +
			"for example: copied_format = \"copied: {{ .Command }}\""
	}

	return &ImagineError{
		Type:     ErrConfigurationInvalid,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewStateError(path string, cause error) *ImagineError {
	message := fmt.Sprintf("failed to update state file '%s'", path)
	guidance := "Check that the directory is writable. Use --state to choose a different file."

	if strings.Contains(cause.Error(), "permission") {
		guidance = fmt.Sprintf("Permission denied writing '%s'. Ensure you have write permissions "+
			"for the file and its parent directories.", path)
	}

	return &ImagineError{
		Type:     ErrStateInvalid,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewOutputError(target string, cause error) *ImagineError {
	message := fmt.Sprintf("failed to output to target '%s'", target)
	guidance := "Check that the output target is valid and accessible."

	if target == "clipboard" {
		guidance = "Clipboard access failed. Ensure you're running in a graphical environment " +
			"or try using --target stdout instead."
	} else if strings.HasPrefix(target, "file:") {
		filePath := strings.TrimPrefix(target, "file:")
		guidance = fmt.Sprintf("Failed to write to file '%s'. Check that the directory exists "+
			"and you have write permissions.", filePath)
	}

	return &ImagineError{
		Type:     ErrOutputFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewValidationError(field string, value interface{}, reason string) *ImagineError {
	message := fmt.Sprintf("validation failed for %s: %v (%s)", field, value, reason)
	guidance := "Check the input value and ensure it meets the required format."

	switch field {
	case "prompt":
		guidance = "A prompt is required when copying to the clipboard. Pass it as an argument, " +
			"for example: imagine render \"a cat in a hat\""
	case "target":
		guidance = "Target must be 'clipboard', 'stdout', or 'file:/path/to/file'. " +
			"Example: --target file:/tmp/prompt.txt"
	case "aspect":
		guidance = "Aspect must be W:H with width 1-21 and height 1-10. Example: --ar 16:9"
	case "algorithm":
		guidance = "Algorithm must be one of v3, test or testp."
	case "stylize":
		guidance = "Stylize must be between 625 and 60000. 2500 leaves the clause out."
	case "suffix_index":
		guidance = "Use 'imagine suffix list' to see suffix indexes."
	}

	return &ImagineError{
		Type:     ErrValidationFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    nil,
	}
}

func NewTerminalError() *ImagineError {
	return &ImagineError{
		Type:    ErrTerminalRequired,
		Message: "the form needs an interactive terminal on stdin",
		Guidance: "Run imagine from a terminal, or use 'imagine render \"your prompt\"' " +
			"to render without the form.",
	}
}

// Recovery strategies

// RecoverFromError wraps unknown errors and adds fallback hints to known ones
func RecoverFromError(err error) error {
	if err == nil {
		return nil
	}

	var imagineErr *ImagineError
	if !errors.As(err, &imagineErr) {
		return &ImagineError{
			Type:     errors.New("unknown error"),
			Message:  err.Error(),
			Guidance: "An unexpected error occurred. Please check your inputs and try again.",
			Cause:    err,
		}
	}

	switch imagineErr.Type {
	case ErrOutputFailed:
		return recoverFromOutputError(imagineErr)
	default:
		return imagineErr
	}
}

func recoverFromOutputError(err *ImagineError) error {
	if strings.Contains(err.Message, "clipboard") && !strings.Contains(err.Guidance, "fallback") {
		err.Guidance += "\n\nTry using --target stdout as a fallback."
	}
	return err
}

// IsRecoverableError checks if an error can be recovered from
func IsRecoverableError(err error) bool {
	var imagineErr *ImagineError
	if !errors.As(err, &imagineErr) {
		return false
	}

	switch imagineErr.Type {
	case ErrOutputFailed:
		return strings.Contains(imagineErr.Message, "clipboard") // Can fallback to stdout
	case ErrStateInvalid:
		return true // State writes are best-effort
	default:
		return false
	}
}
