package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bbs/internal/app"
	"bbs/internal/config"
	"bbs/internal/logging"
)

type commandWiring struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.CoreConfig, error)
	newAPI     apiFactory
	runUI      func(api app.BoardAPI, cfg config.CoreConfig, logger logging.Logger) error
	openUILog  func(level logging.Level) (logging.Logger, io.Closer, error)
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: config.LoadCoreConfig,
		newAPI:     newBoardClient,
		runUI:      app.Run,
		openUILog:  openUILog,
	}
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	baseURL  string
	logLevel string
}

func newRootCmd(wiring commandWiring) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "bbs",
		Short:        "Terminal client for the TechTrain bulletin board",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse the board interactively
  bbs

  # Scriptable commands
  bbs threads --offset 10
  bbs posts <thread-id> --json
  bbs new-thread "Go tips"
  bbs post <thread-id> "hello"
  bbs config --format toml
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive UI.
			return runUI(cmd, wiring, opts)
		},
	}
	cmd.SetOut(wiring.stdout)
	cmd.SetErr(wiring.stderr)

	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Board service base URL (overrides config and BBS_BASE_URL)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error")

	cmd.AddCommand(newUICmd(wiring, opts))
	cmd.AddCommand(newThreadsCmd(wiring, opts))
	cmd.AddCommand(newPostsCmd(wiring, opts))
	cmd.AddCommand(newNewThreadCmd(wiring, opts))
	cmd.AddCommand(newPostCmd(wiring, opts))
	cmd.AddCommand(newConfigCmd(wiring, opts))
	return cmd
}

// resolveConfig loads the effective config and applies flag overrides.
func resolveConfig(wiring commandWiring, opts *rootOptions) (config.CoreConfig, error) {
	load := wiring.loadConfig
	if load == nil {
		load = config.LoadCoreConfig
	}
	cfg, err := load()
	if err != nil {
		return config.CoreConfig{}, err
	}
	if opts == nil {
		return cfg, nil
	}
	if value := strings.TrimSpace(opts.baseURL); value != "" {
		cfg.Server.BaseURL = value
	}
	if value := strings.TrimSpace(opts.logLevel); value != "" {
		cfg.Logging.Level = value
	}
	return cfg, nil
}

func cliLogger(wiring commandWiring, cfg config.CoreConfig) logging.Logger {
	return logging.New(wiring.stderr, logging.ParseLevel(cfg.LogLevel()))
}
