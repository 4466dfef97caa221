package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-hafriyat/pkg/controller"
)

// OutputFormat controls how the delivered submission is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the submission as application/json.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits the values as
	// application/x-www-form-urlencoded.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a labelled text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// DefaultMaxAttempts bounds how often a single field is re-prompted.
const DefaultMaxAttempts = 5

// Theme captures the prefixes printed in front of surface messages.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme is used unless WithTheme overrides it.
var DefaultTheme = Theme{
	InfoPrefix:    "…",
	ErrorPrefix:   "✗",
	SuccessPrefix: "✓",
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme overrides the message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithSubmitter replaces the simulated submitter built from the page runtime
// config.
func WithSubmitter(submitter controller.Submitter) Option {
	return func(r *Renderer) {
		if submitter != nil {
			r.submitter = submitter
		}
	}
}

// WithLogger sets the logger handed to the controller.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxAttempts bounds re-prompting of an invalid field.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}
