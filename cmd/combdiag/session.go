package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"combdiag/internal/config"
	"combdiag/internal/diag"
)

// session is the per-invocation state shared by subcommands.
type session struct {
	cfg        config.Config
	configPath string
	color      bool
	render     diag.RenderOpts
	cleanup    func()
}

var current *session

// setupSession loads configuration, resolves colour and starts tracing and
// profiling.
func setupSession(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, cfgPath, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if colorFlag == "" {
		colorFlag = cfg.Render.Color
	}
	useColor, err := resolveColor(colorFlag, isTerminal(os.Stderr))
	if err != nil {
		return err
	}

	stopTrace, err := setupTracing(cmd, cfg.Trace)
	if err != nil {
		return err
	}
	stopProf, err := setupProfiling(cmd)
	if err != nil {
		stopTrace()
		return err
	}
	cleanup := func() {
		stopProf()
		stopTrace()
	}

	wd, _ := os.Getwd() //nolint:errcheck // "" falls back inside FormatPath
	current = &session{
		cfg:        cfg,
		configPath: cfgPath,
		color:      useColor,
		render:     cfg.RenderOpts(useColor, wd),
		cleanup:    cleanup,
	}
	return nil
}

// teardownSession flushes tracing and profiling. It runs after a successful
// command and again from main, so failing commands are covered too.
func teardownSession(*cobra.Command, []string) error {
	if current != nil && current.cleanup != nil {
		current.cleanup()
		current.cleanup = nil
	}
	return nil
}

func resolveColor(mode string, tty bool) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return tty, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

// outputFormat returns the --format flag of cmd, or the configured default.
func outputFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" && current != nil {
		format = current.cfg.Render.Format
	}
	switch format {
	case "", "pretty":
		return "pretty", nil
	case "json", "sarif":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q (must be pretty, json or sarif)", format)
	}
}
