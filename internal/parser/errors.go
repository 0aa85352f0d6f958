package parser

import "fmt"

// EmptyDocumentError reports text too short to be a readable statement.
// The caller can recover by re-extracting the PDF another way and
// retrying.
type EmptyDocumentError struct {
	Length int
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("statement text is empty or too short to parse (%d characters)", e.Length)
}

// ExtractionFailedError reports an unexpected internal fault during an
// extraction call. It is fatal to that call only; the shared pattern
// catalog is read-only and stays intact for subsequent calls.
type ExtractionFailedError struct {
	Cause error
}

func (e *ExtractionFailedError) Error() string {
	return fmt.Sprintf("failed to parse statement: %v", e.Cause)
}

func (e *ExtractionFailedError) Unwrap() error {
	return e.Cause
}
