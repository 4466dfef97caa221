package config

import "time"

// Config is the top-level site configuration, corresponding to hafriyat.yml.
type Config struct {
	Debug     bool            `yaml:"debug" koanf:"debug"`
	Server    ServerConfig    `yaml:"server" koanf:"server"`
	Log       LogConfig       `yaml:"log" koanf:"log"`
	WhatsApp  WhatsAppConfig  `yaml:"whatsapp" koanf:"whatsapp"`
	Form      FormConfig      `yaml:"form" koanf:"form"`
	Content   ContentConfig   `yaml:"content" koanf:"content"`
	Templates TemplatesConfig `yaml:"templates" koanf:"templates"`
	Theme     ThemeConfig     `yaml:"theme" koanf:"theme"`
	Telemetry TelemetryConfig `yaml:"telemetry" koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr" koanf:"addr"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	WasmDir         string        `yaml:"wasm_dir" koanf:"wasm_dir"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" koanf:"shutdown_timeout"`
	ErrorWindow     time.Duration `yaml:"error_window" koanf:"error_window"`
}

// LogConfig selects the minimum log level.
type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
}

// WhatsAppConfig configures the floating WhatsApp button.
type WhatsAppConfig struct {
	Recipient string `yaml:"recipient" koanf:"recipient"`
	Message   string `yaml:"message" koanf:"message"`
}

// FormConfig configures the contact form.
type FormConfig struct {
	SubmitDelay time.Duration `yaml:"submit_delay" koanf:"submit_delay"`
	// Definition is an OpenAPI document path; empty uses the bundled one.
	Definition string `yaml:"definition" koanf:"definition"`
}

// ContentConfig points at a directory of site copy YAML files. Empty uses
// the bundled copy.
type ContentConfig struct {
	Dir string `yaml:"dir" koanf:"dir"`
}

// TemplatesConfig points at a template directory overriding the embedded
// templates. Watch reloads them on change.
type TemplatesConfig struct {
	Dir   string `yaml:"dir" koanf:"dir"`
	Watch bool   `yaml:"watch" koanf:"watch"`
}

// ThemeConfig selects the theme and variant.
type ThemeConfig struct {
	Name    string `yaml:"name" koanf:"name"`
	Variant string `yaml:"variant" koanf:"variant"`
}

// TelemetryConfig enables OTLP trace export when Endpoint is set.
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint" koanf:"endpoint"`
	ServiceName string `yaml:"service_name" koanf:"service_name"`
	Insecure    bool   `yaml:"insecure" koanf:"insecure"`
}
