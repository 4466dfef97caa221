package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-request data that renderers use without mutating
// the page.
type RenderOptions struct {
	// Theme is the resolved theme configuration. Nil renders without CSS
	// variable overrides.
	Theme *theme.RendererConfig
	// Values pre-populates form fields by name.
	Values map[string]string
	// Errors renders field annotations up front, keyed by field name, using
	// the same markup the runtime produces.
	Errors map[string]string
	// AssetBase prefixes embedded asset URLs. Defaults to "/assets".
	AssetBase string
}

// AssetURL resolves an asset key through the theme, falling back to
// AssetBase joined with fallback.
func (o RenderOptions) AssetURL(key, fallback string) string {
	if o.Theme != nil && o.Theme.AssetURL != nil {
		if url := o.Theme.AssetURL(key); url != "" {
			return url
		}
	}
	base := o.AssetBase
	if base == "" {
		base = "/assets"
	}
	return base + "/" + fallback
}
