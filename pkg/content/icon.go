package content

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy

	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeIcon strips everything from raw SVG markup except drawing
// elements and presentation attributes. Scripts, event handlers and foreign
// elements are removed.
func SanitizeIcon(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

// SanitizeText removes all markup from untrusted text.
func SanitizeText(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(textPolicy.Sanitize(raw))
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		shapes := []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"}
		policy.AllowElements(append([]string{"svg", "g", "title"}, shapes...)...)

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
			"role", "class",
		).OnElements("svg")

		policy.AllowAttrs(
			"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
			"points", "rx", "ry", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin",
		).OnElements(shapes...)

		policy.AllowAttrs("fill", "stroke", "transform").OnElements("g")

		iconPolicy = policy
	})
	return iconPolicy
}
