package view

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// FormState is what a form shows: the submitted values and one error per failing field.
type FormState struct {
	Values map[string]string
	Errors map[string]string
	// Message is a form-level message, e.g. the backend's error detail.
	Message string
}

// NewFormState returns an empty state.
func NewFormState() FormState {
	return FormState{Values: map[string]string{}, Errors: map[string]string{}}
}

// BindForm reads fields from the submitted form. Values are trimmed unless the field
// name contains "password".
func BindForm(c echo.Context, fields ...string) FormState {
	fs := NewFormState()
	for _, f := range fields {
		v := c.FormValue(f)
		if !strings.Contains(f, "password") {
			v = strings.TrimSpace(v)
		}
		fs.Values[f] = v
	}
	return fs
}

// Value returns the value of field.
func (fs FormState) Value(field string) string {
	return fs.Values[field]
}

// Error returns the error shown beside field.
func (fs FormState) Error(field string) string {
	return fs.Errors[field]
}

// HasErrors reports whether any field failed validation.
func (fs FormState) HasErrors() bool {
	return len(fs.Errors) > 0
}

// WithErrors returns fs carrying errs.
func (fs FormState) WithErrors(errs map[string]string) FormState {
	fs.Errors = errs
	return fs
}

// Reset clears values and errors, keeping the message.
func (fs FormState) Reset() FormState {
	return FormState{Values: map[string]string{}, Errors: map[string]string{}, Message: fs.Message}
}
