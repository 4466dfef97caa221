// Package testsupport holds fixtures shared by package tests: the bundled
// contact form, the bundled site copy and helpers to parse rendered pages.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/goliatone/go-hafriyat/pkg/content"
	"github.com/goliatone/go-hafriyat/pkg/deeplink"
	"github.com/goliatone/go-hafriyat/pkg/effects"
	"github.com/goliatone/go-hafriyat/pkg/formdef"
	"github.com/goliatone/go-hafriyat/pkg/htmldoc"
	"github.com/goliatone/go-hafriyat/pkg/model"
	"github.com/goliatone/go-hafriyat/pkg/render"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// ContactForm loads the bundled contact form definition.
func ContactForm(t *testing.T) model.FormModel {
	t.Helper()

	form, err := formdef.LoadDefault(Context())
	if err != nil {
		t.Fatalf("load contact form: %v", err)
	}
	return form
}

// DefaultSite loads the bundled site copy.
func DefaultSite(t *testing.T) content.Site {
	t.Helper()

	site, err := content.LoadDefault()
	if err != nil {
		t.Fatalf("load site content: %v", err)
	}
	return site
}

// DefaultPage assembles the page the site renders with default settings.
func DefaultPage(t *testing.T) render.Page {
	t.Helper()

	link := deeplink.MustWhatsApp(deeplink.PlaceholderRecipient, "")
	runtime := effects.DefaultRuntimeConfig()
	runtime.WhatsAppURL = link

	site := DefaultSite(t)
	return render.Page{
		Title:       site.Company.Name,
		Form:        ContactForm(t),
		Site:        site,
		Runtime:     runtime,
		WhatsAppURL: link,
	}
}

// ValidValues is a contact form submission that passes every validator.
func ValidValues() map[string]string {
	return map[string]string{
		model.FieldName:    "Ayşe Yılmaz",
		model.FieldEmail:   "ayse@example.com",
		model.FieldPhone:   "+90 555 123 45 67",
		model.FieldMessage: "Temel kazısı için teklif almak istiyorum.",
	}
}

// ParsePage parses rendered HTML into a document the controller can drive.
func ParsePage(t *testing.T, page []byte) *htmldoc.Document {
	t.Helper()

	doc, err := htmldoc.Parse(bytes.NewReader(page))
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return doc
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, fn func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := fn(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
