package effects

import "strconv"

const (
	// NavbarSelector locates the navigation bar.
	NavbarSelector = ".navbar"

	// NavbarScrollThreshold is the scroll offset above which the navbar uses
	// its scrolled style. The comparison is strict.
	NavbarScrollThreshold = 100.0

	// NavbarHeight is subtracted from anchor targets so sections are not
	// hidden under the fixed navbar.
	NavbarHeight = 80.0

	// AnchorSelector matches in-page links handled by smooth scroll.
	AnchorSelector = `a[href^="#"]`
)

// NavbarStyle is the inline style applied to the navbar.
type NavbarStyle struct {
	Background string `json:"background"`
	BoxShadow  string `json:"boxShadow"`
}

// NavbarPalette pairs the style used at the top of the page with the one
// used once scrolled.
type NavbarPalette struct {
	Top      NavbarStyle `json:"top"`
	Scrolled NavbarStyle `json:"scrolled"`
}

// DefaultNavbarPalette is the light navbar.
var DefaultNavbarPalette = NavbarPalette{
	Top: NavbarStyle{
		Background: "rgba(255, 255, 255, 0.95)",
		BoxShadow:  "0 2px 20px rgba(0, 0, 0, 0.05)",
	},
	Scrolled: NavbarStyle{
		Background: "rgba(255, 255, 255, 0.98)",
		BoxShadow:  "0 4px 25px rgba(0, 0, 0, 0.1)",
	},
}

// ViewportUnit is the value of the --vh custom property for a window of the
// given inner height: one percent of it, in pixels.
func ViewportUnit(innerHeight float64) string {
	return strconv.FormatFloat(innerHeight*0.01, 'f', -1, 64) + "px"
}
