package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/goliatone/go-hafriyat/pkg/model"
)

const (
	msgRequiredFormat = "%s alanı zorunludur."
	msgInvalidEmail   = "Geçerli bir e-posta adresi giriniz."
	msgInvalidPhone   = "Geçerli bir telefon numarası giriniz."
)

// space matches whitespace the way browsers do, including Unicode
// separators and the byte order mark.
const space = `\s\v\p{Z}\x{FEFF}`

var (
	emailPattern = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9` + space + `\-()]{10,}$`)
)

// Verdict is the outcome of validating a single field value. Message is empty
// when the value is valid.
type Verdict struct {
	Field    string         `json:"field"`
	Validity model.Validity `json:"validity"`
	Message  string         `json:"message,omitempty"`
}

// Valid reports whether the verdict carries no error.
func (v Verdict) Valid() bool {
	return v.Validity == model.Valid
}

// FieldError converts an invalid verdict into the annotation shown next to
// the field. The boolean is false for valid verdicts.
func (v Verdict) FieldError() (model.FieldError, bool) {
	if v.Valid() {
		return model.FieldError{}, false
	}
	return model.FieldError{Field: v.Field, Message: v.Message}, true
}

// ValidateValue evaluates the contact form rules for a single field. Checks
// run in a fixed order and stop at the first failure: emptiness first, then
// the email shape, then the phone shape. Empty values on optional fields are
// valid.
func ValidateValue(name, value string, required bool) Verdict {
	trimmed := strings.TrimFunc(value, isSpace)
	verdict := Verdict{Field: name, Validity: model.Valid}

	if trimmed == "" {
		if required {
			verdict.Validity = model.Empty
			verdict.Message = RequiredMessage(name)
		}
		return verdict
	}

	switch {
	case name == model.FieldEmail && !IsValidEmail(trimmed):
		verdict.Validity = model.FormatInvalid
		verdict.Message = msgInvalidEmail
	case name == model.FieldPhone && !IsValidPhone(trimmed):
		verdict.Validity = model.FormatInvalid
		verdict.Message = msgInvalidPhone
	}
	return verdict
}

// ValidateField is ValidateValue for a model field.
func ValidateField(field model.Field, value string) Verdict {
	return ValidateValue(field.Name, value, field.Required)
}

// Result aggregates the verdicts of a whole form pass.
type Result struct {
	Valid    bool      `json:"valid"`
	Verdicts []Verdict `json:"verdicts,omitempty"`
}

// Errors returns the failing verdicts as field errors, in form order.
func (r Result) Errors() []model.FieldError {
	var out []model.FieldError
	for _, verdict := range r.Verdicts {
		if fe, ok := verdict.FieldError(); ok {
			out = append(out, fe)
		}
	}
	return out
}

// ValidateForm validates every required field of form using values keyed by
// field name. Every required field is evaluated so callers can surface all
// errors at once. Optional fields are not validated.
func ValidateForm(form model.FormModel, values map[string]string) Result {
	result := Result{Valid: true}
	for _, field := range form.RequiredFields() {
		verdict := ValidateField(field, values[field.Name])
		if !verdict.Valid() {
			result.Valid = false
		}
		result.Verdicts = append(result.Verdicts, verdict)
	}
	return result
}

// RequiredMessage formats the "required" error for a field name.
func RequiredMessage(name string) string {
	return fmt.Sprintf(msgRequiredFormat, model.FieldLabel(name))
}

// IsValidEmail reports whether value has a local@domain.tld shape: a single
// @, at least one dot in the domain, no whitespace.
func IsValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsValidPhone reports whether value is an optional leading + followed by at
// least ten digits, spaces, hyphens or parentheses.
func IsValidPhone(value string) bool {
	return phonePattern.MatchString(value)
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.In(r, unicode.Z)
}
