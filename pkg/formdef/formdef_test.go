package formdef

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hafriyat/pkg/model"
)

func TestLoadDefault(t *testing.T) {
	form, err := LoadDefault(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if form.ID != "contact-form" || form.SuccessDialogID != "successModal" {
		t.Fatalf("unexpected identifiers %q / %q", form.ID, form.SuccessDialogID)
	}
	if form.Method != "POST" || form.Action != "/iletisim" || form.OperationID != "submitContact" {
		t.Fatalf("unexpected endpoint %s %s (%s)", form.Method, form.Action, form.OperationID)
	}
	if form.SubmitLabel != "Mesaj Gönder" {
		t.Fatalf("unexpected submit label %q", form.SubmitLabel)
	}

	want := []model.Field{
		{Name: "name", Type: model.FieldTypeText, Required: true, Label: "Ad Soyad", Placeholder: "Adınız ve soyadınız", Order: 1},
		{Name: "email", Type: model.FieldTypeEmail, Required: true, Label: "E-posta", Placeholder: "ornek@eposta.com", Order: 2},
		{Name: "phone", Type: model.FieldTypeTel, Required: true, Label: "Telefon", Placeholder: "+90 5XX XXX XX XX", Order: 3},
		{Name: "message", Type: model.FieldTypeTextarea, Required: true, Label: "Mesaj", Placeholder: "Projenizden kısaca bahsedin", Order: 4},
	}
	if diff := cmp.Diff(want, form.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

const minimalDocument = `
openapi: 3.0.3
info: {title: test, version: "1"}
paths:
  /teklif:
    put:
      operationId: quote
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [email]
              properties:
                zeta: {type: string}
                email: {type: string, format: email}
                alpha: {type: string}
      responses:
        "200": {description: ok}
`

func TestParse_FallbacksAndOrdering(t *testing.T) {
	form, err := Parse(context.Background(), []byte(minimalDocument),
		WithOperationID("quote"),
		WithDecorators(DefaultLabels(), SubmitLabel("Teklif Al")),
	)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if form.ID != model.DefaultFormID || form.Method != "PUT" || form.SubmitLabel != "Teklif Al" {
		t.Fatalf("unexpected form %+v", form)
	}

	var names []string
	for _, f := range form.Fields {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"alpha", "email", "zeta"}, names); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	email, _ := form.Field("email")
	if !email.Required || email.Type != model.FieldTypeEmail || email.Label != "E-posta" {
		t.Fatalf("unexpected email field %+v", email)
	}
	alpha, _ := form.Field("alpha")
	if alpha.Required || alpha.Label != "alpha" {
		t.Fatalf("unexpected alpha field %+v", alpha)
	}
}

func TestParse_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := Parse(ctx, nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, err := Parse(ctx, []byte("openapi: [")); err == nil {
		t.Fatalf("expected error for malformed document")
	}
	if _, err := Parse(ctx, []byte(minimalDocument)); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := LoadDefault(cancelled); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParse_DecoratorFailure(t *testing.T) {
	_, err := LoadDefault(context.Background(), WithDecorators(Optional("company")))
	if err == nil {
		t.Fatalf("expected decorator error")
	}
}

func TestOptionalDecorator(t *testing.T) {
	form, err := LoadDefault(context.Background(), WithDecorators(Optional("phone")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := len(form.RequiredFields()); got != 3 {
		t.Fatalf("expected three required fields, got %d", got)
	}
}

func TestLoadFileAndFS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contact.yaml")
	if err := os.WriteFile(path, DefaultDocument(), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fromFile, err := LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	fromDefault, err := LoadFile(context.Background(), "")
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if diff := cmp.Diff(fromDefault, fromFile); diff != "" {
		t.Fatalf("file and embedded definitions differ (-want +got):\n%s", diff)
	}

	fsys := fstest.MapFS{"forms/contact.yaml": &fstest.MapFile{Data: DefaultDocument()}}
	fromFS, err := LoadFS(context.Background(), fsys, "forms/contact.yaml")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if diff := cmp.Diff(fromDefault, fromFS); diff != "" {
		t.Fatalf("fs and embedded definitions differ (-want +got):\n%s", diff)
	}

	if _, err := LoadFile(context.Background(), filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
