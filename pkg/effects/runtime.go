package effects

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/goliatone/go-hafriyat/pkg/model"
)

// RuntimeConfigElementID is the id of the JSON script element carrying the
// RuntimeConfig in the rendered page.
const RuntimeConfigElementID = "hafriyat-runtime"

// DefaultErrorEndpoint receives uncaught browser errors.
const DefaultErrorEndpoint = "/api/client-errors"

// ErrorReport is the payload the browser posts to the error endpoint for an
// uncaught error or a failed listener.
type ErrorReport struct {
	Message string `json:"message"`
	Source  string `json:"source"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Stack   string `json:"stack"`
}

// Key identifies repeats of the same error.
func (r ErrorReport) Key() string {
	return r.Message + "\x00" + r.Source + "\x00" + strconv.Itoa(r.Line)
}

// RuntimeConfig is everything the browser runtime needs to wire the page.
type RuntimeConfig struct {
	Debug           bool            `json:"debug"`
	FormID          string          `json:"formId"`
	DialogID        string          `json:"dialogId"`
	SubmitDelayMS   int64           `json:"submitDelayMs"`
	WhatsAppURL     string          `json:"whatsappUrl"`
	ErrorEndpoint   string          `json:"errorEndpoint"`
	Navbar          NavbarPalette   `json:"navbar"`
	NavbarThreshold float64         `json:"navbarThreshold"`
	ScrollOffset    float64         `json:"scrollOffset"`
	NavbarThrottle  int64           `json:"navbarThrottleMs,omitempty"`
	Reveal          []RevealGroup   `json:"reveal"`
	Press           []PressFeedback `json:"press"`
	Hover           []HoverFeedback `json:"hover"`
}

// DefaultRuntimeConfig returns the page defaults with navbar throttling off.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		FormID:          model.DefaultFormID,
		DialogID:        model.DefaultSuccessDialogID,
		SubmitDelayMS:   1500,
		ErrorEndpoint:   DefaultErrorEndpoint,
		Navbar:          DefaultNavbarPalette,
		NavbarThreshold: NavbarScrollThreshold,
		ScrollOffset:    NavbarHeight,
		Reveal:          DefaultRevealGroups(),
		Press:           DefaultPressFeedback(),
		Hover:           DefaultHoverFeedback(),
	}
}

// SubmitDelay returns the configured submit delay.
func (c RuntimeConfig) SubmitDelay() time.Duration {
	return time.Duration(c.SubmitDelayMS) * time.Millisecond
}

// NavbarStyleFor applies the configured palette and threshold.
func (c RuntimeConfig) NavbarStyleFor(scrollTop float64) NavbarStyle {
	if scrollTop > c.NavbarThreshold {
		return c.Navbar.Scrolled
	}
	return c.Navbar.Top
}

// ScrollTarget applies the configured offset.
func (c RuntimeConfig) ScrollTarget(offsetTop float64) float64 {
	return offsetTop - c.ScrollOffset
}

// Encode serialises the config for embedding in a script element. The
// encoder escapes <, > and & so the payload cannot close the element.
func (c RuntimeConfig) Encode() (string, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("effects: encode runtime config: %w", err)
	}
	return string(payload), nil
}

// DecodeRuntimeConfig parses a payload produced by Encode. Missing values
// fall back to DefaultRuntimeConfig.
func DecodeRuntimeConfig(payload []byte) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if err := json.Unmarshal(payload, &cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("effects: decode runtime config: %w", err)
	}
	for i := range cfg.Press {
		cfg.Press[i].Duration = time.Duration(cfg.Press[i].DurationMS) * time.Millisecond
	}
	return cfg, nil
}
