package controller

// Surface is the page the controller drives. Implementations exist for the
// browser DOM, an in-memory HTML tree and the terminal.
type Surface interface {
	// Form locates the form element with the given identifier.
	Form(id string) (FormView, bool)
	// Dialog locates the acknowledgment dialog with the given identifier.
	Dialog(id string) (Dialog, bool)
}

// FormView is the designated form element.
type FormView interface {
	// Fields lists every input/textarea descendant in document order.
	Fields() []FieldView
	// Submit returns the submit control.
	Submit() SubmitControl
	// OnSubmit registers the submit handler.
	OnSubmit(handler func(Event))
}

// FieldView is a single input or textarea.
type FieldView interface {
	Name() string
	Value() string
	SetValue(value string)
	Required() bool
	// ShowError ensures exactly one error annotation is attached to the field,
	// reusing an existing one, and marks the field invalid.
	ShowError(message string)
	// ClearError removes the annotation and the invalid marker. Calling it on
	// a field without an error is a no-op.
	ClearError()
	// OnBlur registers the loss-of-focus handler.
	OnBlur(handler func())
	// OnInput registers the value-change handler.
	OnInput(handler func())
}

// SubmitControl is the button that submits the form.
type SubmitControl interface {
	Label() string
	SetLabel(label string)
	Disabled() bool
	SetDisabled(disabled bool)
}

// Dialog is the success acknowledgment.
type Dialog interface {
	Show()
}

// FormMessenger is implemented by forms that can display a form-level
// message, used when a submitter reports a failure.
type FormMessenger interface {
	ShowFormError(message string)
	ClearFormError()
}

// Event is the submit event delivered to the form handler.
type Event interface {
	PreventDefault()
}

// NoopEvent is an Event without a default action to suppress.
type NoopEvent struct{}

// PreventDefault does nothing.
func (NoopEvent) PreventDefault() {}
