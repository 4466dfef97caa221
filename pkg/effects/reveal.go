package effects

import "time"

// ObserverOptions mirrors the IntersectionObserver init dictionary.
type ObserverOptions struct {
	Threshold  float64 `json:"threshold"`
	RootMargin string  `json:"rootMargin"`
}

// DefaultObserverOptions triggers once a tenth of the element is visible,
// 50px before the bottom edge of the viewport.
var DefaultObserverOptions = ObserverOptions{
	Threshold:  0.1,
	RootMargin: "0px 0px -50px 0px",
}

// RevealGroup describes one reveal observer: elements matching Selectors get
// InitialClass up front and VisibleClass once they intersect.
type RevealGroup struct {
	Name         string          `json:"name"`
	Selectors    []string        `json:"selectors"`
	InitialClass string          `json:"initialClass,omitempty"`
	VisibleClass string          `json:"visibleClass"`
	Options      ObserverOptions `json:"options"`
}

// Classes returns the class list of an element of this group after it has
// been observed, given its current classes and whether it intersected.
func (g RevealGroup) Classes(current []string, intersecting bool) []string {
	out := append([]string(nil), current...)
	if g.InitialClass != "" {
		out = addClass(out, g.InitialClass)
	}
	if intersecting {
		out = addClass(out, g.VisibleClass)
	}
	return out
}

// DefaultRevealGroups are the two reveal observers of the page.
func DefaultRevealGroups() []RevealGroup {
	return []RevealGroup{
		{
			Name:         "cards",
			Selectors:    []string{".service-card", ".gallery-item", ".testimonial-card"},
			InitialClass: "loading",
			VisibleClass: "loaded",
			Options:      DefaultObserverOptions,
		},
		{
			Name:         "scroll",
			Selectors:    []string{".fade-in-scroll", ".slide-in-left", ".slide-in-right", ".scale-in"},
			VisibleClass: "visible",
			Options:      DefaultObserverOptions,
		},
	}
}

// PressFeedback scales an element briefly when clicked.
type PressFeedback struct {
	Selector  string        `json:"selector"`
	Transform string        `json:"transform"`
	Duration  time.Duration `json:"-"`
	// DurationMS is Duration in milliseconds for the browser runtime.
	DurationMS int64 `json:"durationMs"`
}

// HoverFeedback lifts an element while the pointer is over it.
type HoverFeedback struct {
	Selector string `json:"selector"`
	Enter    string `json:"enter"`
	Leave    string `json:"leave"`
}

// PressDuration is how long a press transform stays applied.
const PressDuration = 150 * time.Millisecond

// DefaultPressFeedback covers the call-to-action and WhatsApp buttons.
func DefaultPressFeedback() []PressFeedback {
	return []PressFeedback{
		newPress(".cta-button", "scale(0.95)"),
		newPress(".whatsapp-float", "scale(0.9)"),
	}
}

// DefaultHoverFeedback covers service cards.
func DefaultHoverFeedback() []HoverFeedback {
	return []HoverFeedback{{
		Selector: ".service-card",
		Enter:    "translateY(-15px)",
		Leave:    "translateY(0)",
	}}
}

func newPress(selector, transform string) PressFeedback {
	return PressFeedback{
		Selector:   selector,
		Transform:  transform,
		Duration:   PressDuration,
		DurationMS: PressDuration.Milliseconds(),
	}
}

// Mobile affordance selectors and classes.
const (
	TouchDeviceClass   = "touch-device"
	ViewportProperty   = "--vh"
	NavLinkSelector    = ".navbar-nav .nav-link"
	CollapseSelector   = ".navbar-collapse"
	CollapseShownClass = "show"
	LazyImageSelector  = `img[loading="lazy"]`
	LazyClass          = "lazy"
)

// LazySource is the src a lazy image receives once visible: its data-src
// when present, else its current src.
func LazySource(src, dataSrc string) string {
	if dataSrc != "" {
		return dataSrc
	}
	return src
}

func addClass(classes []string, class string) []string {
	for _, existing := range classes {
		if existing == class {
			return classes
		}
	}
	return append(classes, class)
}
