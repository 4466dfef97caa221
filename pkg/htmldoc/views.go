package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-hafriyat/pkg/controller"
	"github.com/goliatone/go-hafriyat/pkg/model"
)

type formView struct {
	doc    *Document
	node   *html.Node
	submit []func(controller.Event)
}

var (
	_ controller.FormView      = (*formView)(nil)
	_ controller.FormMessenger = (*formView)(nil)
)

func (f *formView) Fields() []controller.FieldView {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()

	nodes := fieldNodes(f.node)
	out := make([]controller.FieldView, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, f.doc.fieldFor(node))
	}
	return out
}

func (f *formView) Submit() controller.SubmitControl {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()

	button := findFirst(f.node, func(n *html.Node) bool {
		if !isElement(n, atom.Button) {
			return false
		}
		kind, ok := attr(n, "type")
		return ok && kind == "submit"
	})
	if button == nil {
		return detachedControl{}
	}
	return &submitControl{doc: f.doc, node: button}
}

func (f *formView) OnSubmit(handler func(controller.Event)) {
	f.doc.mu.Lock()
	f.submit = append(f.submit, handler)
	f.doc.mu.Unlock()
}

func (f *formView) ShowFormError(message string) {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()

	status := findFirst(f.node, byClass(FormStatusClass))
	if status == nil {
		status = &html.Node{
			Type:     html.ElementNode,
			Data:     "div",
			DataAtom: atom.Div,
			Attr: []html.Attribute{
				{Key: "class", Val: FormStatusClass + " alert alert-danger"},
				{Key: "role", Val: "alert"},
			},
		}
		if f.node.FirstChild != nil {
			f.node.InsertBefore(status, f.node.FirstChild)
		} else {
			f.node.AppendChild(status)
		}
	}
	setText(status, message)
}

func (f *formView) ClearFormError() {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()

	if status := findFirst(f.node, byClass(FormStatusClass)); status != nil && status.Parent != nil {
		status.Parent.RemoveChild(status)
	}
}

func (f *formView) formError() string {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()

	if status := findFirst(f.node, byClass(FormStatusClass)); status != nil {
		return textContent(status)
	}
	return ""
}

type fieldView struct {
	doc   *Document
	node  *html.Node
	blur  []func()
	input []func()
}

var _ controller.FieldView = (*fieldView)(nil)

func (f *fieldView) Name() string {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()
	name, _ := attr(f.node, "name")
	return name
}

func (f *fieldView) Value() string {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()
	if isElement(f.node, atom.Textarea) {
		return textContent(f.node)
	}
	val, _ := attr(f.node, "value")
	return val
}

func (f *fieldView) SetValue(value string) {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()
	if isElement(f.node, atom.Textarea) {
		setText(f.node, value)
		return
	}
	setAttr(f.node, "value", value)
}

func (f *fieldView) Required() bool {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()
	_, ok := attr(f.node, "required")
	return ok
}

// ShowError reuses the annotation inside the field's parent when present,
// otherwise appends a new one to the parent.
func (f *fieldView) ShowError(message string) {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()

	parent := f.node.Parent
	if parent == nil {
		return
	}
	annotation := findFirst(parent, byClass(model.FieldErrorClass))
	if annotation == nil {
		annotation = &html.Node{
			Type:     html.ElementNode,
			Data:     "div",
			DataAtom: atom.Div,
			Attr:     []html.Attribute{{Key: "class", Val: model.FieldErrorClasses}},
		}
		parent.AppendChild(annotation)
	}
	setText(annotation, message)
	addClass(f.node, model.InvalidClass)
}

func (f *fieldView) ClearError() {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()

	if parent := f.node.Parent; parent != nil {
		if annotation := findFirst(parent, byClass(model.FieldErrorClass)); annotation != nil {
			annotation.Parent.RemoveChild(annotation)
		}
	}
	removeClass(f.node, model.InvalidClass)
}

func (f *fieldView) OnBlur(handler func()) {
	f.doc.mu.Lock()
	f.blur = append(f.blur, handler)
	f.doc.mu.Unlock()
}

func (f *fieldView) OnInput(handler func()) {
	f.doc.mu.Lock()
	f.input = append(f.input, handler)
	f.doc.mu.Unlock()
}

type submitControl struct {
	doc  *Document
	node *html.Node
}

func (s *submitControl) Label() string {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()
	return strings.TrimSpace(textContent(s.node))
}

func (s *submitControl) SetLabel(label string) {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()
	setText(s.node, label)
}

func (s *submitControl) Disabled() bool {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()
	_, ok := attr(s.node, "disabled")
	return ok
}

func (s *submitControl) SetDisabled(disabled bool) {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()
	if disabled {
		setAttr(s.node, "disabled", "")
		return
	}
	removeAttr(s.node, "disabled")
}

// detachedControl stands in for a form without a submit button.
type detachedControl struct{}

func (detachedControl) Label() string { return "" }
func (detachedControl) SetLabel(string) {}
func (detachedControl) Disabled() bool { return false }
func (detachedControl) SetDisabled(bool) {}

type dialog struct {
	doc  *Document
	id   string
	node *html.Node
}

// Show marks the dialog open the way the Bootstrap modal does.
func (m *dialog) Show() {
	m.doc.mu.Lock()
	defer m.doc.mu.Unlock()

	addClass(m.node, "show")
	setAttr(m.node, "style", "display: block;")
	setAttr(m.node, "aria-modal", "true")
	removeAttr(m.node, "aria-hidden")
	m.doc.dialogs[m.id]++
}
