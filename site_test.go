package hafriyat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-hafriyat/internal/config"
	"github.com/goliatone/go-hafriyat/pkg/deeplink"
	"github.com/goliatone/go-hafriyat/pkg/model"
	"github.com/goliatone/go-hafriyat/pkg/render"
	"github.com/goliatone/go-hafriyat/pkg/testsupport"
)

func TestNewSite_Defaults(t *testing.T) {
	site, err := NewSite(testsupport.Context(), *config.DefaultConfig())
	if err != nil {
		t.Fatalf("new site: %v", err)
	}

	page := site.Page()
	if page.Form.ID != model.DefaultFormID {
		t.Fatalf("unexpected form id %q", page.Form.ID)
	}
	if page.Runtime.SubmitDelayMS != 1500 {
		t.Fatalf("unexpected submit delay %d", page.Runtime.SubmitDelayMS)
	}
	link, err := deeplink.Parse(page.WhatsAppURL)
	if err != nil {
		t.Fatalf("parse whatsapp link: %v", err)
	}
	if link.Recipient != deeplink.PlaceholderRecipient || link.Message != deeplink.DefaultMessage {
		t.Fatalf("unexpected link %+v", link)
	}
	if site.Theme() == nil {
		t.Fatalf("expected resolved theme")
	}

	out, err := site.RenderPage(testsupport.Context())
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	doc := testsupport.ParsePage(t, out)
	if _, ok := doc.Form(model.DefaultFormID); !ok {
		t.Fatalf("rendered page has no contact form")
	}
	if !strings.Contains(string(out), "<style>:root {") {
		t.Fatalf("site theme must be applied to the page")
	}
}

func TestNewSite_Overrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Debug = true
	cfg.WhatsApp.Recipient = "+90 532 000 11 22"
	cfg.WhatsApp.Message = "Teklif istiyorum"
	cfg.Form.SubmitDelay = 0

	site, err := NewSite(testsupport.Context(), *cfg)
	if err != nil {
		t.Fatalf("new site: %v", err)
	}
	page := site.Page()
	if !page.Runtime.Debug {
		t.Fatalf("debug flag must reach the runtime config")
	}
	if page.Runtime.SubmitDelayMS != 1500 {
		t.Fatalf("zero delay must keep the default, got %d", page.Runtime.SubmitDelayMS)
	}
	link, err := deeplink.Parse(page.WhatsAppURL)
	if err != nil {
		t.Fatalf("parse whatsapp link: %v", err)
	}
	if link.Recipient != "905320001122" || link.Message != "Teklif istiyorum" {
		t.Fatalf("unexpected link %+v", link)
	}
}

func TestNewSite_Errors(t *testing.T) {
	cases := map[string]func(*config.Config){
		"recipient":  func(c *config.Config) { c.WhatsApp.Recipient = "abc" },
		"theme":      func(c *config.Config) { c.Theme.Name = "missing" },
		"definition": func(c *config.Config) { c.Form.Definition = filepath.Join(t.TempDir(), "none.yaml") },
		"content":    func(c *config.Config) { c.Content.Dir = filepath.Join(t.TempDir(), "none") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			mutate(cfg)
			if _, err := NewSite(testsupport.Context(), *cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestSite_ReloadRereadsContent(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) {
		data := []byte("company:\n  name: " + name + "\n")
		if err := os.WriteFile(filepath.Join(dir, "site.yaml"), data, 0o644); err != nil {
			t.Fatalf("write content: %v", err)
		}
	}
	write("Ayaz Hafriyat")

	cfg := config.DefaultConfig()
	cfg.Content.Dir = dir
	site, err := NewSite(testsupport.Context(), *cfg)
	if err != nil {
		t.Fatalf("new site: %v", err)
	}
	if got := site.WatchDirs(); len(got) != 1 || got[0] != dir {
		t.Fatalf("unexpected watch dirs %v", got)
	}

	write("Ayaz Hafriyat ve Nakliyat")
	site.Reload()
	if site.Page().Title != "Ayaz Hafriyat ve Nakliyat" {
		t.Fatalf("reload did not pick up content, title %q", site.Page().Title)
	}

	if err := os.WriteFile(filepath.Join(dir, "site.yaml"), []byte("company: ["), 0o644); err != nil {
		t.Fatalf("write content: %v", err)
	}
	site.Reload()
	if site.Page().Title != "Ayaz Hafriyat ve Nakliyat" {
		t.Fatalf("broken content must keep the previous copy")
	}
}

func TestSite_RenderUnknownRenderer(t *testing.T) {
	site, err := NewSite(testsupport.Context(), *config.DefaultConfig())
	if err != nil {
		t.Fatalf("new site: %v", err)
	}
	if _, err := site.Render(testsupport.Context(), "pdf", render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
	if got := site.Renderers(); len(got) != 1 || got[0] != PageRenderer {
		t.Fatalf("unexpected renderers %v", got)
	}
}
