package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/csheth/articlewriter/internal/config"
	"github.com/csheth/articlewriter/internal/llm"
	"github.com/csheth/articlewriter/internal/tui"
)

type options struct {
	configPath  string
	overrides   config.Overrides
	noAltScreen bool
	debug       bool
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "articlewriter [flags]",
		Short: "Draft HTML articles with a generative model",
		Long: `articlewriter turns a title into a complete HTML article, types it into
an editor as it arrives, and can rewrite the draft in place on request.`,
		Example: `  # Gemini (reads GOOGLE_API_KEY)
  articlewriter

  # OpenAI-compatible endpoint
  articlewriter --provider openai --model gpt-4o-mini

  # Local Ollama with a debug log
  articlewriter --provider ollama --log-file writer.log --debug`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd.Flags().Changed("config"))
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "path to the TOML configuration file")
	flags.StringVar(&opts.overrides.Provider, "provider", "", "generation backend: gemini, openai or ollama")
	flags.StringVar(&opts.overrides.Model, "model", "", "model name for the selected backend")
	flags.StringVar(&opts.overrides.Endpoint, "endpoint", "", "custom backend base URL")
	flags.StringVar(&opts.overrides.LogFile, "log-file", "", "write logs to this file (discarded otherwise)")
	flags.BoolVar(&opts.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts options, configRequired bool) error {
	cfg, err := config.Load(opts.configPath, configRequired, opts.overrides)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogFile, opts.debug)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	var client llm.Client
	client, err = llm.New(cfg.LLM())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM disabled:", err)
		logger.Warn("llm disabled", "provider", cfg.Provider, "err", err)
	} else {
		logger.Info("llm ready", "backend", client.Name())
	}

	programOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !opts.noAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			LLM:          client,
			Animation:    cfg.Reveal(),
			EditorWidth:  cfg.Editor.Width,
			EditorHeight: cfg.Editor.Height,
			Logger:       logger,
		}),
		programOpts...,
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// newLogger writes text logs to path; with no path logs are dropped because
// the terminal belongs to the UI.
func newLogger(path string, debug bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	var dest io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		dest = f
		closeFn = func() { _ = f.Close() }
	}
	handler := slog.NewTextHandler(dest, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closeFn, nil
}
