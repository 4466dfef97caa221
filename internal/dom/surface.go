//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/goliatone/go-hafriyat/pkg/controller"
	"github.com/goliatone/go-hafriyat/pkg/model"
)

// surface is the live document seen through controller.Surface.
type surface struct {
	rt *Runtime
}

var _ controller.Surface = (*surface)(nil)

func (s *surface) Form(id string) (controller.FormView, bool) {
	el := s.rt.doc.Call("getElementById", id)
	if missing(el) {
		return nil, false
	}
	return &formView{rt: s.rt, el: el}, true
}

func (s *surface) Dialog(id string) (controller.Dialog, bool) {
	el := s.rt.doc.Call("getElementById", id)
	if missing(el) {
		return nil, false
	}
	return &dialog{rt: s.rt, el: el}, true
}

type formView struct {
	rt *Runtime
	el js.Value
}

var (
	_ controller.FormView      = (*formView)(nil)
	_ controller.FormMessenger = (*formView)(nil)
)

func (f *formView) Fields() []controller.FieldView {
	var out []controller.FieldView
	each(f.el.Call("querySelectorAll", "input, textarea"), func(el js.Value) {
		out = append(out, &fieldView{rt: f.rt, el: el})
	})
	return out
}

func (f *formView) Submit() controller.SubmitControl {
	button := f.el.Call("querySelector", `button[type="submit"]`)
	if missing(button) {
		return &detachedControl{}
	}
	return &submitControl{el: button}
}

func (f *formView) OnSubmit(handler func(controller.Event)) {
	f.rt.listen(f.el, "submit", false, "form-submit", func(ev js.Value) {
		handler(event{v: ev})
	})
}

func (f *formView) ShowFormError(message string) {
	status := f.el.Call("querySelector", "."+model.FormStatusClass)
	if missing(status) {
		status = f.rt.doc.Call("createElement", "div")
		status.Set("className", model.FormStatusClass+" alert alert-danger")
		status.Call("setAttribute", "role", "alert")
		f.el.Call("prepend", status)
	}
	status.Set("textContent", message)
}

func (f *formView) ClearFormError() {
	status := f.el.Call("querySelector", "."+model.FormStatusClass)
	if !missing(status) {
		status.Call("remove")
	}
}

type fieldView struct {
	rt *Runtime
	el js.Value
}

func (f *fieldView) Name() string          { return stringProp(f.el, "name") }
func (f *fieldView) Value() string         { return stringProp(f.el, "value") }
func (f *fieldView) SetValue(value string) { f.el.Set("value", value) }
func (f *fieldView) Required() bool        { return f.el.Get("required").Truthy() }

func (f *fieldView) ShowError(message string) {
	parent := f.el.Get("parentElement")
	if missing(parent) {
		return
	}
	container := parent.Call("querySelector", "."+model.FieldErrorClass)
	if missing(container) {
		container = f.rt.doc.Call("createElement", "div")
		container.Set("className", model.FieldErrorClasses)
		parent.Call("appendChild", container)
	}
	container.Set("textContent", message)
	f.el.Get("classList").Call("add", model.InvalidClass)
}

func (f *fieldView) ClearError() {
	parent := f.el.Get("parentElement")
	if !missing(parent) {
		container := parent.Call("querySelector", "."+model.FieldErrorClass)
		if !missing(container) {
			container.Call("remove")
		}
	}
	f.el.Get("classList").Call("remove", model.InvalidClass)
}

func (f *fieldView) OnBlur(handler func()) {
	f.rt.listen(f.el, "blur", false, "field-blur", func(js.Value) { handler() })
}

func (f *fieldView) OnInput(handler func()) {
	f.rt.listen(f.el, "input", false, "field-input", func(js.Value) { handler() })
}

type submitControl struct {
	el js.Value
}

func (b *submitControl) Label() string          { return stringProp(b.el, "textContent") }
func (b *submitControl) SetLabel(label string)  { b.el.Set("textContent", label) }
func (b *submitControl) Disabled() bool         { return b.el.Get("disabled").Truthy() }
func (b *submitControl) SetDisabled(value bool) { b.el.Set("disabled", value) }

// detachedControl stands in when the form has no submit button.
type detachedControl struct {
	label    string
	disabled bool
}

func (d *detachedControl) Label() string          { return d.label }
func (d *detachedControl) SetLabel(label string)  { d.label = label }
func (d *detachedControl) Disabled() bool         { return d.disabled }
func (d *detachedControl) SetDisabled(value bool) { d.disabled = value }

// dialog shows the success modal through Bootstrap when it is loaded.
type dialog struct {
	rt *Runtime
	el js.Value
}

func (d *dialog) Show() {
	bootstrap := d.rt.win.Get("bootstrap")
	if !missing(bootstrap) {
		bootstrap.Get("Modal").Call("getOrCreateInstance", d.el).Call("show")
		return
	}
	d.el.Get("classList").Call("add", "show")
	d.el.Get("style").Set("display", "block")
	d.el.Call("setAttribute", "aria-hidden", "false")
}

type event struct {
	v js.Value
}

func (e event) PreventDefault() {
	if !missing(e.v) {
		e.v.Call("preventDefault")
	}
}
