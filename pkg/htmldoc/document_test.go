package htmldoc_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hafriyat/pkg/controller"
	"github.com/goliatone/go-hafriyat/pkg/htmldoc"
	"github.com/goliatone/go-hafriyat/pkg/model"
	"github.com/goliatone/go-hafriyat/pkg/ratelimit"
)

const page = `<!doctype html>
<html><body>
<form id="contact-form" novalidate>
  <div class="mb-3"><input type="text" name="name" class="form-control" required></div>
  <div class="mb-3"><input type="email" name="email" class="form-control" required></div>
  <div class="mb-3"><input type="tel" name="phone" class="form-control" required></div>
  <div class="mb-3"><textarea name="message" class="form-control" required></textarea></div>
  <button type="submit" class="btn cta-button">Mesaj Gönder</button>
</form>
<div class="modal fade" id="successModal" aria-hidden="true"></div>
</body></html>`

func newPage(t *testing.T) (*htmldoc.Document, *controller.Controller, *ratelimit.ManualClock) {
	t.Helper()
	doc, err := htmldoc.ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	clock := ratelimit.NewManualClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	c := controller.New(controller.WithSubmitter(controller.NewSimulatedSubmitter(controller.DefaultSubmitDelay, clock)))
	if err := c.Init(doc); err != nil {
		t.Fatalf("init: %v", err)
	}
	return doc, c, clock
}

func TestDocument_FieldsInDocumentOrder(t *testing.T) {
	doc, _, _ := newPage(t)
	want := []string{"name", "email", "phone", "message"}
	if diff := cmp.Diff(want, doc.FieldNames("contact-form")); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_BlurAnnotatesOnce(t *testing.T) {
	doc, _, _ := newPage(t)

	if err := doc.Input("contact-form", "phone", "123"); err != nil {
		t.Fatalf("input: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := doc.Blur("contact-form", "phone"); err != nil {
			t.Fatalf("blur: %v", err)
		}
	}

	if got := doc.CountByClass(model.FieldErrorClass); got != 1 {
		t.Fatalf("expected one annotation, got %d", got)
	}
	if got := doc.CountByClass(model.InvalidClass); got != 1 {
		t.Fatalf("expected one invalid marker, got %d", got)
	}
	rendered := doc.String()
	if !strings.Contains(rendered, `<div class="field-error text-danger small mt-1">Geçerli bir telefon numarası giriniz.</div>`) {
		t.Fatalf("annotation not rendered as expected:\n%s", rendered)
	}

	if err := doc.Input("contact-form", "phone", "1234"); err != nil {
		t.Fatalf("input: %v", err)
	}
	if got := doc.CountByClass(model.FieldErrorClass); got != 0 {
		t.Fatalf("input must clear the annotation, %d left", got)
	}
	if got := doc.CountByClass(model.InvalidClass); got != 0 {
		t.Fatalf("input must clear the invalid marker, %d left", got)
	}
}

func TestDocument_SubmitInvalid(t *testing.T) {
	doc, c, clock := newPage(t)

	if err := doc.Input("contact-form", "email", "user@example"); err != nil {
		t.Fatalf("input: %v", err)
	}
	ev, err := doc.Submit("contact-form")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !ev.DefaultPrevented() {
		t.Fatalf("expected default to be prevented")
	}

	want := map[string]string{
		"name":    "Ad Soyad alanı zorunludur.",
		"email":   "Geçerli bir e-posta adresi giriniz.",
		"phone":   "Telefon alanı zorunludur.",
		"message": "Mesaj alanı zorunludur.",
	}
	if diff := cmp.Diff(want, doc.FieldErrors("contact-form")); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if c.State() != model.StateIdle || clock.Pending() != 0 {
		t.Fatalf("invalid submit must not start a submission")
	}
}

func TestDocument_SubmitValid(t *testing.T) {
	doc, c, clock := newPage(t)

	values := map[string]string{
		"name":    "Ayaz Hafriyat",
		"email":   "info@example.com",
		"phone":   "+90 555 123 45 67",
		"message": "Temel kazısı için fiyat alabilir miyim?",
	}
	for name, value := range values {
		if err := doc.Input("contact-form", name, value); err != nil {
			t.Fatalf("input %s: %v", name, err)
		}
	}

	if _, err := doc.Submit("contact-form"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	snap, err := doc.Snapshot("contact-form")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !snap.Disabled || snap.SubmitLabel != "Gönderiliyor..." {
		t.Fatalf("expected sending state, got %+v", snap)
	}
	if diff := cmp.Diff(values, snap.Values); diff != "" {
		t.Fatalf("values changed while sending (-want +got):\n%s", diff)
	}

	clock.Advance(controller.DefaultSubmitDelay)
	c.Wait()

	snap, err = doc.Snapshot("contact-form")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	want := htmldoc.Snapshot{
		Values:      map[string]string{"name": "", "email": "", "phone": "", "message": ""},
		Errors:      map[string]string{},
		SubmitLabel: "Mesaj Gönder",
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if doc.DialogShown("successModal") != 1 {
		t.Fatalf("expected the success dialog once")
	}
	if !strings.Contains(doc.String(), `class="modal fade show"`) {
		t.Fatalf("dialog not marked as shown")
	}
}

func TestDocument_FormMessenger(t *testing.T) {
	doc, err := htmldoc.ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	form, ok := doc.Form("contact-form")
	if !ok {
		t.Fatalf("form not found")
	}
	messenger, ok := form.(controller.FormMessenger)
	if !ok {
		t.Fatalf("form must support form-level messages")
	}

	messenger.ShowFormError("first")
	messenger.ShowFormError(controller.SubmitFailedMessage)
	if got := doc.CountByClass(htmldoc.FormStatusClass); got != 1 {
		t.Fatalf("expected one status element, got %d", got)
	}
	snap, _ := doc.Snapshot("contact-form")
	if snap.FormError != controller.SubmitFailedMessage {
		t.Fatalf("unexpected form error %q", snap.FormError)
	}

	messenger.ClearFormError()
	messenger.ClearFormError()
	if got := doc.CountByClass(htmldoc.FormStatusClass); got != 0 {
		t.Fatalf("expected status removed, got %d", got)
	}
}

func TestDocument_MissingFormAndField(t *testing.T) {
	doc, err := htmldoc.ParseString(`<html><body><div id="contact-form"></div></body></html>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := doc.Form("contact-form"); ok {
		t.Fatalf("a non-form element must not be treated as the form")
	}
	if _, err := doc.Submit("contact-form"); err == nil {
		t.Fatalf("expected error for missing form")
	}

	doc, _, _ = newPage(t)
	if err := doc.Blur("contact-form", "company"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}
