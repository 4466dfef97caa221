package sitetheme

import theme "github.com/goliatone/go-theme"

// DefaultPartials maps page sections to the templates the vanilla renderer
// ships with.
func DefaultPartials() map[string]string {
	return map[string]string{
		"page.layout":       "templates/layout.tmpl",
		"page.navbar":       "templates/partials/navbar.tmpl",
		"page.hero":         "templates/partials/hero.tmpl",
		"page.services":     "templates/partials/services.tmpl",
		"page.gallery":      "templates/partials/gallery.tmpl",
		"page.testimonials": "templates/partials/testimonials.tmpl",
		"page.contact":      "templates/partials/contact.tmpl",
		"page.footer":       "templates/partials/footer.tmpl",
	}
}

// DefaultManifest is the bundled "ayaz" theme with light and dark variants.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:      DefaultTheme,
		Version:   "1.0.0",
		Templates: DefaultPartials(),
		Tokens: map[string]string{
			"primary":                 "#f39c12",
			"primary-dark":            "#d35400",
			"text":                    "#2c3e50",
			"surface":                 "#ffffff",
			TokenNavbarTop:            "rgba(255, 255, 255, 0.95)",
			TokenNavbarScrolled:       "rgba(255, 255, 255, 0.98)",
			TokenNavbarShadowTop:      "0 2px 20px rgba(0, 0, 0, 0.05)",
			TokenNavbarShadowScrolled: "0 4px 25px rgba(0, 0, 0, 0.1)",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"site.stylesheet": "site.css",
				"site.loader":     "hafriyat.js",
				"site.wasm_exec":  "/app/wasm_exec.js",
				"site.wasm":       "/app/hafriyat.wasm",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"text":                    "#ecf0f1",
					"surface":                 "#1e272e",
					TokenNavbarTop:            "rgba(30, 39, 46, 0.95)",
					TokenNavbarScrolled:       "rgba(30, 39, 46, 0.98)",
					TokenNavbarShadowScrolled: "0 4px 25px rgba(0, 0, 0, 0.4)",
				},
			},
		},
	}
}
