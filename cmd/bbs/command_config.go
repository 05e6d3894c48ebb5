package main

import (
	"errors"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bbs/internal/config"
)

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
	configFormatYAML = "yaml"
)

type configOutput struct {
	CoreConfigPath string                 `json:"core_config_path,omitempty" toml:"core_config_path,omitempty" yaml:"core_config_path,omitempty"`
	UILogPath      string                 `json:"ui_log_path,omitempty" toml:"ui_log_path,omitempty" yaml:"ui_log_path,omitempty"`
	Server         effectiveServerConfig  `json:"server" toml:"server" yaml:"server"`
	Logging        effectiveLoggingConfig `json:"logging" toml:"logging" yaml:"logging"`
	UI             effectiveUIConfig      `json:"ui" toml:"ui" yaml:"ui"`
}

type effectiveServerConfig struct {
	BaseURL        string `json:"base_url" toml:"base_url" yaml:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds" toml:"timeout_seconds" yaml:"timeout_seconds"`
}

type effectiveLoggingConfig struct {
	Level string `json:"level" toml:"level" yaml:"level"`
}

type effectiveUIConfig struct {
	Locale   string `json:"locale" toml:"locale" yaml:"locale"`
	Markdown bool   `json:"markdown" toml:"markdown" yaml:"markdown"`
}

func newConfigCmd(wiring commandWiring, opts *rootOptions) *cobra.Command {
	var defaults bool
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print configuration (effective or defaults)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolvedFormat, err := resolveConfigFormat(format)
			if err != nil {
				return err
			}
			payload, err := buildConfigOutput(wiring, opts, defaults)
			if err != nil {
				return err
			}
			return writeConfigOutput(cmd.OutOrStdout(), resolvedFormat, payload)
		},
	}
	cmd.Flags().BoolVar(&defaults, "default", false, "Print default config values")
	cmd.Flags().StringVar(&format, "format", configFormatJSON, "Output format: json|toml|yaml")
	return cmd
}

func buildConfigOutput(wiring commandWiring, opts *rootOptions, defaults bool) (configOutput, error) {
	cfg := config.DefaultCoreConfig()
	if !defaults {
		loaded, err := resolveConfig(wiring, opts)
		if err != nil {
			return configOutput{}, err
		}
		cfg = loaded
	}
	out := configOutput{
		Server: effectiveServerConfig{
			BaseURL:        cfg.BaseURL(),
			TimeoutSeconds: int(cfg.Timeout().Seconds()),
		},
		Logging: effectiveLoggingConfig{Level: cfg.LogLevel()},
		UI: effectiveUIConfig{
			Locale:   cfg.Locale(),
			Markdown: cfg.MarkdownEnabled(),
		},
	}
	if path, err := config.CoreConfigPath(); err == nil {
		out.CoreConfigPath = path
	}
	if path, err := config.UILogPath(); err == nil {
		out.UILogPath = path
	}
	return out, nil
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		return writeJSON(out, payload)
	case configFormatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	case configFormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(payload); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return errors.New("unsupported format")
	}
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatJSON:
		return configFormatJSON, nil
	case configFormatTOML:
		return configFormatTOML, nil
	case configFormatYAML, "yml":
		return configFormatYAML, nil
	default:
		return "", errors.New("invalid format: must be json, toml, or yaml")
	}
}
