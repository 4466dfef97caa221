// Package sitetheme resolves the site's go-theme manifests into the renderer
// configuration: CSS variables, partial overrides, asset URLs and the navbar
// palette used by the scroll effect.
package sitetheme

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-hafriyat/pkg/effects"
)

const (
	// DefaultTheme is the bundled theme.
	DefaultTheme = "ayaz"
	// DefaultVariant is used when no variant is requested.
	DefaultVariant = "light"
)

// Navbar token names.
const (
	TokenNavbarTop            = "navbar-bg-top"
	TokenNavbarScrolled       = "navbar-bg-scrolled"
	TokenNavbarShadowTop      = "navbar-shadow-top"
	TokenNavbarShadowScrolled = "navbar-shadow-scrolled"
)

var (
	// ErrUnknownTheme is returned for unregistered theme names.
	ErrUnknownTheme = errors.New("sitetheme: unknown theme")
	// ErrUnknownVariant is returned for variants the manifest does not define.
	ErrUnknownVariant = errors.New("sitetheme: unknown variant")
)

type manifestRegistry interface {
	Register(*theme.Manifest) error
}

// Catalog holds the registered manifests and selects among them.
type Catalog struct {
	mu        sync.RWMutex
	registry  manifestRegistry
	manifests map[string]*theme.Manifest
	fallbacks map[string]string
}

var _ theme.ThemeSelector = (*Catalog)(nil)

// NewCatalog returns a catalog preloaded with the bundled manifest.
func NewCatalog() *Catalog {
	c := &Catalog{
		registry:  theme.NewRegistry(),
		manifests: make(map[string]*theme.Manifest),
		fallbacks: DefaultPartials(),
	}
	if err := c.Register(DefaultManifest()); err != nil {
		panic(err)
	}
	return c
}

// Register adds a manifest. Names must be unique.
func (c *Catalog) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return errors.New("sitetheme: manifest name is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.manifests[manifest.Name]; exists {
		return fmt.Errorf("sitetheme: theme %q already registered", manifest.Name)
	}
	if err := c.registry.Register(manifest); err != nil {
		return fmt.Errorf("sitetheme: register %s: %w", manifest.Name, err)
	}
	c.manifests[manifest.Name] = manifest
	return nil
}

// Themes lists the registered theme names.
func (c *Catalog) Themes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.manifests))
	for name := range c.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select implements theme.ThemeSelector. Empty arguments fall back to the
// defaults; the default variant needs no entry in the manifest.
func (c *Catalog) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultTheme
	}
	if strings.TrimSpace(variant) == "" {
		variant = DefaultVariant
	}

	c.mu.RLock()
	manifest, ok := c.manifests[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	if _, ok := manifest.Variants[variant]; !ok && variant != DefaultVariant {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownVariant, name, variant)
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Resolve selects a theme and derives its renderer configuration.
func (c *Catalog) Resolve(name, variant string) (*theme.RendererConfig, error) {
	selection, err := c.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return RendererConfig(selection, c.fallbacks), nil
}

// RendererConfig merges manifest and variant tokens, templates and assets.
// Variant values override the manifest; fallbacks fill missing partials.
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	tokens := mergeMaps(manifest.Tokens, variant.Tokens)
	partials := mergeMaps(fallbacks, manifest.Templates, variant.Templates)
	files := mergeMaps(manifest.Assets.Files, variant.Assets.Files)
	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok {
				return ""
			}
			if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
				return file
			}
			return path.Join(prefix, file)
		},
	}
}

// NavbarPalette reads the navbar tokens of cfg, keeping the default palette
// for missing tokens.
func NavbarPalette(cfg *theme.RendererConfig) effects.NavbarPalette {
	palette := effects.DefaultNavbarPalette
	if cfg == nil {
		return palette
	}
	override := func(dst *string, key string) {
		if value := strings.TrimSpace(cfg.Tokens[key]); value != "" {
			*dst = value
		}
	}
	override(&palette.Top.Background, TokenNavbarTop)
	override(&palette.Scrolled.Background, TokenNavbarScrolled)
	override(&palette.Top.BoxShadow, TokenNavbarShadowTop)
	override(&palette.Scrolled.BoxShadow, TokenNavbarShadowScrolled)
	return palette
}

// CSSVarsStyle renders cfg's CSS variables as a declaration list sorted by
// name, suitable for a :root rule.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteByte(';')
	}
	return b.String()
}

func mergeMaps(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for key, value := range layer {
			out[key] = value
		}
	}
	return out
}
