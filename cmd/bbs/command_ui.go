package main

import (
	"io"

	"github.com/spf13/cobra"

	"bbs/internal/config"
	"bbs/internal/logging"
)

func newUICmd(wiring commandWiring, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Run the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, wiring, opts)
		},
	}
}

func runUI(_ *cobra.Command, wiring commandWiring, opts *rootOptions) error {
	cfg, err := resolveConfig(wiring, opts)
	if err != nil {
		return err
	}
	level := logging.ParseLevel(cfg.LogLevel())
	logger := logging.Nop()
	if wiring.openUILog != nil {
		fileLogger, closer, err := wiring.openUILog(level)
		if err == nil {
			logger = fileLogger
			defer closer.Close()
		}
	}
	logger.Info("ui starting", logging.F("base_url", cfg.BaseURL()), logging.F("locale", cfg.Locale()))
	return wiring.runUI(wiring.newAPI(cfg, logger), cfg, logger)
}

// openUILog sends UI logs to ~/.bbs/ui.log since the terminal is owned by
// the UI while it runs.
func openUILog(level logging.Level) (logging.Logger, io.Closer, error) {
	path, err := config.UILogPath()
	if err != nil {
		return nil, nil, err
	}
	logger, file, err := logging.OpenFile(path, level)
	if err != nil {
		return nil, nil, err
	}
	return logger, file, nil
}
