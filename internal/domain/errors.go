package domain

import "fmt"

// TransportError indicates a failure talking to the remote data service:
// network, authorization, or a malformed response. Operations that hit a
// TransportError are abandoned whole; no partial results are kept.
type TransportError struct {
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TransportError) Unwrap() error { return e.Cause }

// ExportSinkError indicates a failure delivering a finished export artifact
// (file save or clipboard copy).
type ExportSinkError struct {
	Message string
	Cause   error
}

func (e *ExportSinkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExportSinkError) Unwrap() error { return e.Cause }

// ValidationError indicates invalid input (CLI flags, configuration).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrTransport creates a TransportError wrapping cause.
func ErrTransport(cause error, format string, args ...interface{}) *TransportError {
	return &TransportError{Message: fmt.Sprintf(format, args...), Cause: cause}
}

// ErrExportSink creates an ExportSinkError wrapping cause.
func ErrExportSink(cause error, format string, args ...interface{}) *ExportSinkError {
	return &ExportSinkError{Message: fmt.Sprintf(format, args...), Cause: cause}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
