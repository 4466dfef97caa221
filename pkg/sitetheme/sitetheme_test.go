package sitetheme

import (
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-hafriyat/pkg/effects"
)

func TestCatalog_ResolveDefaults(t *testing.T) {
	catalog := NewCatalog()

	cfg, err := catalog.Resolve("", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Theme != DefaultTheme || cfg.Variant != DefaultVariant {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.CSSVars["--primary"] != "#f39c12" {
		t.Fatalf("css vars not derived from tokens: %v", cfg.CSSVars)
	}
	if got := cfg.AssetURL("site.stylesheet"); got != "/assets/site.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("site.wasm"); got != "/app/hafriyat.wasm" {
		t.Fatalf("absolute asset paths must be kept, got %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("unknown asset must resolve empty, got %q", got)
	}
	if cfg.Partials["page.contact"] != "templates/partials/contact.tmpl" {
		t.Fatalf("default partials missing: %v", cfg.Partials)
	}

	if got := NavbarPalette(cfg); got != effects.DefaultNavbarPalette {
		t.Fatalf("light palette must match the default navbar styles, got %+v", got)
	}
}

func TestCatalog_DarkVariantOverridesTokens(t *testing.T) {
	cfg, err := NewCatalog().Resolve(DefaultTheme, "dark")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	palette := NavbarPalette(cfg)
	if palette.Top.Background != "rgba(30, 39, 46, 0.95)" || palette.Scrolled.BoxShadow != "0 4px 25px rgba(0, 0, 0, 0.4)" {
		t.Fatalf("variant tokens not applied: %+v", palette)
	}
	if palette.Top.BoxShadow != effects.DefaultNavbarPalette.Top.BoxShadow {
		t.Fatalf("base tokens must remain for keys the variant omits")
	}
	if cfg.CSSVars["--primary"] != "#f39c12" || cfg.CSSVars["--surface"] != "#1e272e" {
		t.Fatalf("unexpected merged vars %v", cfg.CSSVars)
	}
}

func TestCatalog_SelectErrors(t *testing.T) {
	catalog := NewCatalog()
	if _, err := catalog.Select("acme", ""); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if _, err := catalog.Select(DefaultTheme, "sepia"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestCatalog_Register(t *testing.T) {
	catalog := NewCatalog()
	if err := catalog.Register(DefaultManifest()); err == nil {
		t.Fatalf("duplicate registration must fail")
	}
	if err := catalog.Register(&theme.Manifest{}); err == nil {
		t.Fatalf("nameless manifest must fail")
	}

	custom := &theme.Manifest{
		Name:    "santiye",
		Version: "0.1.0",
		Tokens:  map[string]string{"primary": "#ffcc00"},
		Assets: theme.Assets{
			Prefix: "/assets/santiye",
			Files:  map[string]string{"site.stylesheet": "theme.css"},
		},
	}
	if err := catalog.Register(custom); err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := catalog.Themes(); len(got) != 2 || got[0] != "ayaz" || got[1] != "santiye" {
		t.Fatalf("unexpected themes %v", got)
	}
	cfg, err := catalog.Resolve("santiye", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := cfg.AssetURL("site.stylesheet"); got != "/assets/santiye/theme.css" {
		t.Fatalf("unexpected asset url %q", got)
	}
}

func TestCSSVarsStyle(t *testing.T) {
	cfg := &theme.RendererConfig{CSSVars: map[string]string{"--b": "2", "--a": "1"}}
	if got := CSSVarsStyle(cfg); got != "--a: 1; --b: 2;" {
		t.Fatalf("unexpected style %q", got)
	}
	if CSSVarsStyle(nil) != "" {
		t.Fatalf("nil config must render empty")
	}
}
