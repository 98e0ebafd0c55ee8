// Package rendering turns resume content into themed HTML and PDF documents.
package rendering

import "fmt"

// TemplateError reports a theme or template problem. The caller chose an
// unusable theme, or the embedded templates are broken.
type TemplateError struct {
	Theme   Theme
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	msg := "template error"
	if e.Theme != "" {
		msg += fmt.Sprintf(" (%s)", e.Theme)
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *TemplateError) Unwrap() error { return e.Cause }

// RenderError reports a failure of the PDF printer.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return "render error: " + e.Message
	}
	return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }
