package config

import (
	"time"

	"github.com/goliatone/go-hafriyat/pkg/controller"
	"github.com/goliatone/go-hafriyat/pkg/deeplink"
	"github.com/goliatone/go-hafriyat/pkg/sitetheme"
)

const (
	// DefaultPath is the configuration file read when none is given.
	DefaultPath = "hafriyat.yml"
	// EnvPrefix marks environment overrides, e.g. HAFRIYAT_SERVER_ADDR.
	EnvPrefix = "HAFRIYAT_"
)

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			WasmDir:         "dist/app",
			ShutdownTimeout: 10 * time.Second,
			ErrorWindow:     time.Minute,
		},
		Log: LogConfig{Level: "info"},
		WhatsApp: WhatsAppConfig{
			Recipient: deeplink.PlaceholderRecipient,
			Message:   deeplink.DefaultMessage,
		},
		Form: FormConfig{SubmitDelay: controller.DefaultSubmitDelay},
		Theme: ThemeConfig{
			Name:    sitetheme.DefaultTheme,
			Variant: sitetheme.DefaultVariant,
		},
		Telemetry: TelemetryConfig{ServiceName: "hafriyat"},
	}
}
