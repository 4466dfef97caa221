package htmldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-hafriyat/pkg/controller"
	"github.com/goliatone/go-hafriyat/pkg/model"
)

// FormStatusClass marks the form-level message element.
const FormStatusClass = model.FormStatusClass

// ErrFieldNotFound is returned when an event targets an unknown field.
var ErrFieldNotFound = errors.New("htmldoc: field not found")

// Document is a mutable HTML tree that satisfies controller.Surface. All
// reads and writes are serialised; event handlers run without the lock held.
type Document struct {
	mu   sync.Mutex
	root *html.Node

	forms   map[*html.Node]*formView
	fields  map[*html.Node]*fieldView
	dialogs map[string]int
}

var _ controller.Surface = (*Document)(nil)

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parse: %w", err)
	}
	return &Document{
		root:    root,
		forms:   make(map[*html.Node]*formView),
		fields:  make(map[*html.Node]*fieldView),
		dialogs: make(map[string]int),
	}, nil
}

// ParseString is Parse for an in-memory page.
func ParseString(page string) (*Document, error) {
	return Parse(strings.NewReader(page))
}

// Render writes the current tree.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("htmldoc: render: %w", err)
	}
	return nil
}

// String renders the current tree, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Form implements controller.Surface.
func (d *Document) Form(id string) (controller.FormView, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	node := findFirst(d.root, byID(id))
	if node == nil || !isElement(node, atom.Form) {
		return nil, false
	}
	return d.formFor(node), true
}

// Dialog implements controller.Surface.
func (d *Document) Dialog(id string) (controller.Dialog, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	node := findFirst(d.root, byID(id))
	if node == nil {
		return nil, false
	}
	return &dialog{doc: d, id: id, node: node}, true
}

// DialogShown reports how many times the dialog with id has been shown.
func (d *Document) DialogShown(id string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dialogs[id]
}

// CountByID reports how many elements carry id.
func (d *Document) CountByID(id string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(findAll(d.root, byID(id)))
}

// CountByClass reports how many elements carry class.
func (d *Document) CountByClass(class string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(findAll(d.root, byClass(class)))
}

// FieldErrors returns the annotation text per field name of the form with
// formID. Fields without an annotation are absent.
func (d *Document) FieldErrors(formID string) map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[string]string)
	form := findFirst(d.root, byID(formID))
	if form == nil {
		return out
	}
	for _, node := range fieldNodes(form) {
		if node.Parent == nil {
			continue
		}
		if annotation := findFirst(node.Parent, byClass(model.FieldErrorClass)); annotation != nil {
			name, _ := attr(node, "name")
			out[name] = textContent(annotation)
		}
	}
	return out
}

// FieldNames lists the names of the form's fields in document order.
func (d *Document) FieldNames(formID string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	form := findFirst(d.root, byID(formID))
	if form == nil {
		return nil
	}
	var names []string
	for _, node := range fieldNodes(form) {
		name, _ := attr(node, "name")
		names = append(names, name)
	}
	return names
}

// Input sets the value of a field and dispatches its input event.
func (d *Document) Input(formID, name, value string) error {
	field, err := d.lookupField(formID, name)
	if err != nil {
		return err
	}
	field.SetValue(value)

	d.mu.Lock()
	handlers := append([]func(){}, field.input...)
	d.mu.Unlock()
	for _, h := range handlers {
		h()
	}
	return nil
}

// Blur dispatches the loss-of-focus event of a field.
func (d *Document) Blur(formID, name string) error {
	field, err := d.lookupField(formID, name)
	if err != nil {
		return err
	}

	d.mu.Lock()
	handlers := append([]func(){}, field.blur...)
	d.mu.Unlock()
	for _, h := range handlers {
		h()
	}
	return nil
}

// Submit dispatches a submit event on the form. The returned event reports
// whether a handler suppressed the default action.
func (d *Document) Submit(formID string) (*Event, error) {
	d.mu.Lock()
	node := findFirst(d.root, byID(formID))
	if node == nil || !isElement(node, atom.Form) {
		d.mu.Unlock()
		return nil, fmt.Errorf("htmldoc: form %q not found", formID)
	}
	form := d.formFor(node)
	handlers := append([]func(controller.Event){}, form.submit...)
	d.mu.Unlock()

	ev := &Event{}
	for _, h := range handlers {
		h(ev)
	}
	return ev, nil
}

func (d *Document) lookupField(formID, name string) (*fieldView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	form := findFirst(d.root, byID(formID))
	if form == nil {
		return nil, fmt.Errorf("htmldoc: form %q not found", formID)
	}
	for _, node := range fieldNodes(form) {
		if val, _ := attr(node, "name"); val == name {
			return d.fieldFor(node), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, name)
}

func (d *Document) formFor(node *html.Node) *formView {
	if f, ok := d.forms[node]; ok {
		return f
	}
	f := &formView{doc: d, node: node}
	d.forms[node] = f
	return f
}

func (d *Document) fieldFor(node *html.Node) *fieldView {
	if f, ok := d.fields[node]; ok {
		return f
	}
	f := &fieldView{doc: d, node: node}
	d.fields[node] = f
	return f
}

func fieldNodes(form *html.Node) []*html.Node {
	return findAll(form, func(n *html.Node) bool {
		return isElement(n, atom.Input) || isElement(n, atom.Textarea)
	})
}

// Event is a dispatched submit event.
type Event struct {
	mu        sync.Mutex
	prevented bool
}

// PreventDefault implements controller.Event.
func (e *Event) PreventDefault() {
	e.mu.Lock()
	e.prevented = true
	e.mu.Unlock()
}

// DefaultPrevented reports whether a handler suppressed the default action.
func (e *Event) DefaultPrevented() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prevented
}

// Snapshot is a summary of the form, used by the simulate command.
type Snapshot struct {
	Values      map[string]string `json:"values"`
	Errors      map[string]string `json:"errors"`
	FormError   string            `json:"formError,omitempty"`
	SubmitLabel string            `json:"submitLabel"`
	Disabled    bool              `json:"disabled"`
}

// Snapshot captures the form with formID.
func (d *Document) Snapshot(formID string) (Snapshot, error) {
	form, ok := d.Form(formID)
	if !ok {
		return Snapshot{}, fmt.Errorf("htmldoc: form %q not found", formID)
	}
	snap := Snapshot{
		Values: make(map[string]string),
		Errors: d.FieldErrors(formID),
	}
	for _, field := range form.Fields() {
		snap.Values[field.Name()] = field.Value()
	}
	submit := form.Submit()
	snap.SubmitLabel = submit.Label()
	snap.Disabled = submit.Disabled()
	snap.FormError = form.(*formView).formError()
	return snap, nil
}
