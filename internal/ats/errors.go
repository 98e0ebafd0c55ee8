package ats

import (
	"errors"
	"fmt"
)

// User-facing messages.
const (
	MissingJobDescriptionMessage = "Please provide a job description for ATS analysis"
	FailureMessage               = "Failed to analyze resume. Please try again later."
)

var (
	// ErrMissingJobDescription is returned before any network call when the job description is blank.
	ErrMissingJobDescription = errors.New(MissingJobDescriptionMessage) //nolint:stylecheck // shown to users verbatim
	// ErrMissingResume is returned when a request carries neither a file nor structured content.
	ErrMissingResume = errors.New("no resume content to analyze")
	// ErrBusy is returned by Runner when an analysis is already outstanding.
	ErrBusy = errors.New("an analysis is already in progress")
)

// AnalysisError is any transport, status or decoding failure of the scoring endpoint.
// Its message is always the generic FailureMessage; Detail carries the cause for logs.
type AnalysisError struct {
	StatusCode int
	Cause      error
}

func (e *AnalysisError) Error() string {
	return FailureMessage
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Detail describes the underlying failure.
func (e *AnalysisError) Detail() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("scoring endpoint returned %d: %v", e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("scoring endpoint failed: %v", e.Cause)
}
