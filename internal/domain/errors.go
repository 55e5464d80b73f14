package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAIService     = "AI_SERVICE_ERROR"
	ErrCodeStorage       = "STORAGE_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrEmptyQuestion        = NewDomainError(ErrCodeValidation, "question text is required")
	ErrEmptyRoomName        = NewDomainError(ErrCodeValidation, "room name is required")
	ErrAudioNotFound        = NewDomainError(ErrCodeValidation, "audio file is missing or empty")
	ErrAudioTooLarge        = NewDomainError(ErrCodeValidation, "audio file exceeds the maximum allowed size")
	ErrAudioInvalidFormat   = NewDomainError(ErrCodeValidation, "audio content type is not supported")
	ErrAudioInvalidType     = NewDomainError(ErrCodeValidation, "file content does not match a known audio format")
	ErrTranscriptionTooLong = NewDomainError(ErrCodeValidation, "transcription exceeds the maximum chunk length")
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
)

// Not found errors
var (
	ErrRoomNotFound     = NewDomainError(ErrCodeNotFound, "room not found")
	ErrQuestionNotFound = NewDomainError(ErrCodeNotFound, "question not found")
)
