package llm

import (
	"errors"
	"fmt"
)

// ValidationError reports input rejected before any backend call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Fields a ValidationError can name.
const (
	FieldTitle   = "title"
	FieldContent = "content"
)

var (
	ErrEmptyTitle   = &ValidationError{Field: FieldTitle, Message: "title is empty"}
	ErrEmptyContent = &ValidationError{Field: FieldContent, Message: "content is empty"}

	// ErrEmptyResponse is wrapped in a GenerationError when the backend replies with no text.
	ErrEmptyResponse = errors.New("backend returned an empty response")
)

// GenerationError wraps every failure of a generation call: transport,
// backend status, blocked prompts and malformed or empty bodies.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("generation failed: %v", e.Err)
	}
	return fmt.Sprintf("%s: generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
