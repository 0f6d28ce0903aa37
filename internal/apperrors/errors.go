package apperrors

import (
	"errors"
	"fmt"
)

// Class identifies the failure category so the HTTP layer can pick a status
// code without inspecting error strings.
type Class int

const (
	ClassValidation Class = iota
	ClassSessionNotFound
	ClassSessionCreationFailed
	ClassRetrievalUnavailable
	ClassGenerationFailed
)

// AppError carries a class plus the wrapped cause.
type AppError struct {
	Class   Class
	Message string
	Cause   error
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

func NewValidationError(message string) *AppError {
	return &AppError{Class: ClassValidation, Message: message}
}

func NewSessionNotFound(sessionId string) *AppError {
	return &AppError{Class: ClassSessionNotFound, Message: fmt.Sprintf("session %s not found", sessionId)}
}

func NewSessionCreationFailed(cause error) *AppError {
	return &AppError{Class: ClassSessionCreationFailed, Message: "failed to create chat session", Cause: cause}
}

func NewRetrievalUnavailable(cause error) *AppError {
	return &AppError{Class: ClassRetrievalUnavailable, Message: "retrieval backend unavailable", Cause: cause}
}

func NewGenerationFailed(cause error) *AppError {
	return &AppError{Class: ClassGenerationFailed, Message: "answer generation failed", Cause: cause}
}

// ClassOf extracts the class from err, or ok=false if err is not an AppError.
func ClassOf(err error) (Class, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Class, true
	}
	return 0, false
}

// Is reports whether err belongs to the given class.
func Is(err error, class Class) bool {
	c, ok := ClassOf(err)
	return ok && c == class
}
