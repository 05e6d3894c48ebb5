package config

import (
	"errors"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultBaseURL        = "https://railway.bulletinboard.techtrain.dev"
	defaultTimeoutSeconds = 10
	defaultLocale         = "ja"

	envBaseURL = "BBS_BASE_URL"
	envLocale  = "BBS_LOCALE"
)

type CoreConfig struct {
	Server  CoreServerConfig  `toml:"server"`
	Logging CoreLoggingConfig `toml:"logging"`
	UI      CoreUIConfig      `toml:"ui"`
}

type CoreServerConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type CoreLoggingConfig struct {
	Level string `toml:"level"`
}

type CoreUIConfig struct {
	Locale   string `toml:"locale"`
	Markdown *bool  `toml:"markdown"`
}

func DefaultCoreConfig() CoreConfig {
	return CoreConfig{
		Server: CoreServerConfig{
			BaseURL:        defaultBaseURL,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Logging: CoreLoggingConfig{
			Level: "info",
		},
		UI: CoreUIConfig{
			Locale: defaultLocale,
		},
	}
}

// LoadCoreConfig reads ~/.bbs/config.toml over the defaults and applies
// environment overrides.
func LoadCoreConfig() (CoreConfig, error) {
	path, err := CoreConfigPath()
	if err != nil {
		return CoreConfig{}, err
	}
	cfg, err := loadCoreConfigFromPath(path)
	if err != nil {
		return CoreConfig{}, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *CoreConfig) applyEnv() {
	if value := strings.TrimSpace(os.Getenv(envBaseURL)); value != "" {
		c.Server.BaseURL = value
	}
	if value := strings.TrimSpace(os.Getenv(envLocale)); value != "" {
		c.UI.Locale = value
	}
}

func (c CoreConfig) BaseURL() string {
	raw := strings.TrimSpace(c.Server.BaseURL)
	raw = strings.TrimRight(raw, "/")
	if raw == "" {
		return defaultBaseURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return raw
}

func (c CoreConfig) Timeout() time.Duration {
	seconds := c.Server.TimeoutSeconds
	if seconds <= 0 {
		seconds = defaultTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

func (c CoreConfig) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c CoreConfig) Locale() string {
	locale := strings.TrimSpace(c.UI.Locale)
	if locale == "" {
		return defaultLocale
	}
	return locale
}

func (c CoreConfig) MarkdownEnabled() bool {
	if c.UI.Markdown == nil {
		return true
	}
	return *c.UI.Markdown
}

func loadCoreConfigFromPath(path string) (CoreConfig, error) {
	cfg := DefaultCoreConfig()
	if err := readTOML(path, &cfg); err != nil {
		return CoreConfig{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
