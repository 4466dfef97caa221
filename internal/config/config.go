package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/goliatone/go-hafriyat/pkg/deeplink"
)

var sections = map[string]bool{
	"server":    true,
	"log":       true,
	"whatsapp":  true,
	"form":      true,
	"content":   true,
	"templates": true,
	"theme":     true,
	"telemetry": true,
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (HAFRIYAT_*). A missing file is not an
// error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps HAFRIYAT_SERVER_ALLOW_ALL_ORIGINS to
// server.allow_all_origins: only the underscore after a known section
// becomes a dot.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if section, rest, ok := strings.Cut(key, "_"); ok && sections[section] {
		return section + "." + rest
	}
	return key
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must be non-negative")
	}
	if c.Server.ErrorWindow < 0 {
		return fmt.Errorf("server.error_window must be non-negative")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	if _, err := deeplink.NormalizeRecipient(c.WhatsApp.Recipient); err != nil {
		return fmt.Errorf("invalid whatsapp.recipient: %w", err)
	}
	if c.Form.SubmitDelay <= 0 {
		return fmt.Errorf("form.submit_delay must be positive")
	}
	if c.Templates.Watch && c.Templates.Dir == "" {
		return fmt.Errorf("templates.watch requires templates.dir")
	}
	return nil
}
