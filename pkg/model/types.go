package model

// FieldType is the simplified enum for contact form input kinds.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeTextarea FieldType = "textarea"
)

// Well-known field names of the contact form.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldMessage = "message"
)

const (
	// DefaultFormID identifies the contact form element on the page.
	DefaultFormID = "contact-form"
	// DefaultSuccessDialogID identifies the success acknowledgment dialog.
	DefaultSuccessDialogID = "successModal"
	// DefaultSubmitLabel is the submit control label while idle.
	DefaultSubmitLabel = "Mesaj Gönder"
	// SendingLabel replaces the submit label while a submission is in flight.
	SendingLabel = "Gönderiliyor..."
)

// CSS state markers produced on the page.
const (
	InvalidClass    = "is-invalid"
	FieldErrorClass = "field-error"
	// FieldErrorClasses is the full class list of a rendered FieldError.
	FieldErrorClasses = "field-error text-danger small mt-1"
	// FormStatusClass marks the form-level message element.
	FormStatusClass = "form-status"
)

// Field models an individual input inside the contact form.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Order       int               `json:"order,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FormModel is the top-level representation renderers and the controller
// consume.
type FormModel struct {
	ID              string            `json:"id"`
	OperationID     string            `json:"operationId,omitempty"`
	Action          string            `json:"action"`
	Method          string            `json:"method"`
	Summary         string            `json:"summary,omitempty"`
	SubmitLabel     string            `json:"submitLabel"`
	SuccessDialogID string            `json:"successDialogId"`
	Fields          []Field           `json:"fields"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// Field returns the field with the given name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// RequiredFields returns the fields flagged required, in form order.
func (f FormModel) RequiredFields() []Field {
	out := make([]Field, 0, len(f.Fields))
	for _, field := range f.Fields {
		if field.Required {
			out = append(out, field)
		}
	}
	return out
}

// Validity is the derived state of a field value.
type Validity string

const (
	Valid         Validity = "valid"
	Empty         Validity = "empty"
	FormatInvalid Validity = "format-invalid"
)

// FieldError is the per-field validation annotation. At most one exists per
// field at any time.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SubmissionState enumerates the contact form submit lifecycle.
type SubmissionState int

const (
	StateIdle SubmissionState = iota
	StateSubmitting
	StateIdleAfterSuccess
)

func (s SubmissionState) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateIdleAfterSuccess:
		return "idle-after-success"
	default:
		return "idle"
	}
}
