package tui

import (
	"sync"

	"github.com/goliatone/go-hafriyat/pkg/controller"
	"github.com/goliatone/go-hafriyat/pkg/model"
)

// State is the terminal rendition of the contact page: one form whose
// fields hold the answers given so far, plus the success dialog. Messages
// the controller would show on a page are handed to notify.
type State struct {
	mu sync.Mutex

	form     *formState
	dialogID string
	shown    int
	notify   func(kind messageKind, text string)
}

type messageKind int

const (
	messageInfo messageKind = iota
	messageError
	messageSuccess
)

var _ controller.Surface = (*State)(nil)

// newState builds the surface for form, seeding values by field name.
func newState(form model.FormModel, values map[string]string, notify func(messageKind, string)) *State {
	if notify == nil {
		notify = func(messageKind, string) {}
	}
	s := &State{dialogID: form.SuccessDialogID, notify: notify}
	if s.dialogID == "" {
		s.dialogID = model.DefaultSuccessDialogID
	}

	label := form.SubmitLabel
	if label == "" {
		label = model.DefaultSubmitLabel
	}
	formID := form.ID
	if formID == "" {
		formID = model.DefaultFormID
	}
	fs := &formState{state: s, id: formID, submit: &submitState{state: s, label: label}}
	for _, field := range form.Fields {
		fs.fields = append(fs.fields, &fieldState{
			state: s,
			field: field,
			value: values[field.Name],
		})
	}
	s.form = fs
	return s
}

// Form implements controller.Surface.
func (s *State) Form(id string) (controller.FormView, bool) {
	if s.form == nil || s.form.id != id {
		return nil, false
	}
	return s.form, true
}

// Dialog implements controller.Surface.
func (s *State) Dialog(id string) (controller.Dialog, bool) {
	if id != s.dialogID {
		return nil, false
	}
	return dialogState{state: s}, true
}

// Values returns the current answers by field name.
func (s *State) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.form.fields))
	for _, f := range s.form.fields {
		out[f.field.Name] = f.value
	}
	return out
}

// Errors returns the current field annotations by field name.
func (s *State) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string)
	for _, f := range s.form.fields {
		if f.err != "" {
			out[f.field.Name] = f.err
		}
	}
	return out
}

// FormError returns the form-level message, if any.
func (s *State) FormError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.formErr
}

// DialogShown reports how often the success dialog was shown.
func (s *State) DialogShown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shown
}

// answer stores value as the field's answer and dispatches input then blur,
// the way a browser does when a user types and leaves the field. It returns
// the annotation left on the field.
func (s *State) answer(name, value string) string {
	f := s.form.lookup(name)
	if f == nil {
		return ""
	}
	s.mu.Lock()
	f.value = value
	input := append([]func(){}, f.input...)
	blur := append([]func(){}, f.blur...)
	s.mu.Unlock()

	for _, fn := range input {
		fn()
	}
	for _, fn := range blur {
		fn()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return f.err
}

// submit dispatches the form's submit event.
func (s *State) submit() {
	s.mu.Lock()
	handlers := append([]func(controller.Event){}, s.form.onSubmit...)
	s.mu.Unlock()

	for _, fn := range handlers {
		fn(controller.NoopEvent{})
	}
}

type formState struct {
	state    *State
	id       string
	fields   []*fieldState
	submit   *submitState
	onSubmit []func(controller.Event)
	formErr  string
}

var (
	_ controller.FormView      = (*formState)(nil)
	_ controller.FormMessenger = (*formState)(nil)
)

func (f *formState) lookup(name string) *fieldState {
	for _, field := range f.fields {
		if field.field.Name == name {
			return field
		}
	}
	return nil
}

func (f *formState) Fields() []controller.FieldView {
	out := make([]controller.FieldView, 0, len(f.fields))
	for _, field := range f.fields {
		out = append(out, field)
	}
	return out
}

func (f *formState) Submit() controller.SubmitControl {
	return f.submit
}

func (f *formState) OnSubmit(handler func(controller.Event)) {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()
	f.onSubmit = append(f.onSubmit, handler)
}

func (f *formState) ShowFormError(message string) {
	f.state.mu.Lock()
	f.formErr = message
	f.state.mu.Unlock()
	f.state.notify(messageError, message)
}

func (f *formState) ClearFormError() {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()
	f.formErr = ""
}

type fieldState struct {
	state *State
	field model.Field
	value string
	err   string
	blur  []func()
	input []func()
}

var _ controller.FieldView = (*fieldState)(nil)

func (f *fieldState) Name() string { return f.field.Name }

func (f *fieldState) Required() bool { return f.field.Required }

func (f *fieldState) Value() string {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()
	return f.value
}

func (f *fieldState) SetValue(value string) {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()
	f.value = value
}

func (f *fieldState) ShowError(message string) {
	f.state.mu.Lock()
	f.err = message
	f.state.mu.Unlock()
	f.state.notify(messageError, message)
}

func (f *fieldState) ClearError() {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()
	f.err = ""
}

func (f *fieldState) OnBlur(handler func()) {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()
	f.blur = append(f.blur, handler)
}

func (f *fieldState) OnInput(handler func()) {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()
	f.input = append(f.input, handler)
}

type submitState struct {
	state    *State
	label    string
	disabled bool
}

func (s *submitState) Label() string {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.label
}

func (s *submitState) SetLabel(label string) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.label = label
}

func (s *submitState) Disabled() bool {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.disabled
}

// SetDisabled prints the label while the control is disabled, which is the
// in-flight label during a submission.
func (s *submitState) SetDisabled(disabled bool) {
	s.state.mu.Lock()
	s.disabled = disabled
	label := s.label
	s.state.mu.Unlock()
	if disabled {
		s.state.notify(messageInfo, label)
	}
}

type dialogState struct {
	state *State
}

// SuccessMessage is printed when the success dialog is shown.
const SuccessMessage = "Mesajınız alındı. En kısa sürede sizinle iletişime geçeceğiz."

func (d dialogState) Show() {
	d.state.mu.Lock()
	d.state.shown++
	d.state.mu.Unlock()
	d.state.notify(messageSuccess, SuccessMessage)
}
