package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/scoring"
)

// Signup messages returned to clients verbatim.
const (
	MsgAccountExists   = "User already has an account"
	MsgWeakPassword    = "Password should be at least 6 characters"
	MsgInvalidEmail    = "Invalid email address"
	MsgPasswordsDiffer = "Passwords do not match"
	MsgAccountFailed   = "Error creating account"
	MsgNameRequired    = "Name is required"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return MsgAccountExists
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates the account was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrValidation indicates request validation failure. Message is shown to the client.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrLastEntry is returned when removing the only remaining entry of a collection.
type ErrLastEntry struct {
	Collection form.Collection
}

func (e *ErrLastEntry) Error() string {
	return fmt.Sprintf("at least one %s entry must remain", e.Collection)
}

// MsgFormUnavailable is returned when the stored form state cannot be read.
const MsgFormUnavailable = "Could not load your resume. Please try again later."

// ErrNoAnalysis is returned when no ATS result has been cached yet.
var ErrNoAnalysis = errors.New("no analysis has been run yet")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists  *ErrEmailAlreadyExists
		invalidCreds *ErrInvalidCredentials
		notFound     *ErrUserNotFound
		validation   *ErrValidation
		lastEntry    *ErrLastEntry
		indexErr     *form.IndexError
		analysisErr  *ats.AnalysisError
		templateErr  *rendering.TemplateError
		extractErr   *scoring.ExtractError
		restoreErr   *form.RestoreError
	)

	switch {
	case errors.As(err, &emailExists), errors.As(err, &lastEntry), errors.Is(err, ats.ErrBusy):
		return http.StatusConflict
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	case errors.As(err, &notFound), errors.As(err, &indexErr),
		errors.Is(err, form.ErrUnknownCollection), errors.Is(err, ErrNoAnalysis):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &templateErr), errors.As(err, &extractErr),
		errors.Is(err, form.ErrUnknownField), errors.Is(err, form.ErrUnknownSkillType),
		errors.Is(err, ats.ErrMissingJobDescription), errors.Is(err, ats.ErrMissingResume),
		errors.Is(err, scoring.ErrDocFormat), errors.Is(err, scoring.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.As(err, &analysisErr):
		return http.StatusBadGateway
	case errors.As(err, &restoreErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
