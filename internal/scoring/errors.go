package scoring

import (
	"errors"
	"fmt"
)

// Upload rejection messages returned to clients verbatim.
const (
	DocFormatMessage   = "DOC format not supported, please convert to DOCX or PDF"
	UnsupportedMessage = "Unsupported file format"
)

var (
	// ErrDocFormat is returned for legacy .doc uploads.
	ErrDocFormat = errors.New(DocFormatMessage) //nolint:stylecheck // shown to users verbatim
	// ErrUnsupportedFormat is returned for any extension other than .pdf, .docx and .doc.
	ErrUnsupportedFormat = errors.New(UnsupportedMessage) //nolint:stylecheck // shown to users verbatim
)

// ExtractError reports a file that has a supported extension but could not be read.
type ExtractError struct {
	Filename string
	Cause    error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Filename, e.Cause)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}
