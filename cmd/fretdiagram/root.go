package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/engrave/internal/config"
	"github.com/dshills/engrave/internal/config/loader"
	"github.com/dshills/engrave/internal/engraving/fret"
	"github.com/dshills/engrave/internal/engraving/score"
	"github.com/dshills/engrave/internal/engraving/xmlio"
)

// app holds what every subcommand shares: the logger and the loaded style
// configuration.
type app struct {
	logger *slog.Logger
	cfg    *config.Config

	styleArgs []string
	verbose   bool
	colorMode string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "fretdiagram",
		Short:         "Fret diagram engraving toolkit",
		Long:          "fretdiagram builds chord fret diagrams from patterns, converts and exports\nscore files and renders diagrams to PNG, SVG or text.",
		Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.cfg != nil {
				a.cfg.Close()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringArrayVarP(&a.styleArgs, "style", "s", nil, "style sheet file (toml/yaml) or key=value override; repeatable")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output")
	pf.StringVar(&a.colorMode, "color", "auto", "colorize output (auto|on|off)")

	root.AddCommand(
		newParseCmd(a),
		newConvertCmd(a),
		newExportCmd(a),
		newRenderCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newScriptCmd(a),
		newWatchCmd(a),
	)
	return root
}

// setup configures logging, colour and the style layers.
func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	fret.SetLogger(a.logger)
	score.SetLogger(a.logger)
	xmlio.SetLogger(a.logger)

	switch a.colorMode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("unknown color mode %q", a.colorMode)
	}

	files, overrides, err := splitStyleArgs(a.styleArgs)
	if err != nil {
		return err
	}
	a.cfg = config.New(
		config.WithFiles(files...),
		config.WithLogger(a.logger),
		config.WithWatcher(cmd.Name() == "watch"),
	)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.cfg.Load(ctx); err != nil {
		return fmt.Errorf("load style: %w", err)
	}
	for _, kv := range overrides {
		if err := a.cfg.Set(kv[0], loader.ParseValue(kv[1])); err != nil {
			return fmt.Errorf("style %s: %w", kv[0], err)
		}
	}
	return nil
}

// splitStyleArgs separates sheet paths from key=value overrides.
func splitStyleArgs(args []string) (files []string, overrides [][2]string, err error) {
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			files = append(files, arg)
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, nil, fmt.Errorf("style override %q has no key", arg)
		}
		overrides = append(overrides, [2]string{key, strings.TrimSpace(value)})
	}
	return files, overrides, nil
}

// newScore creates a score on the current style.
func (a *app) newScore() *score.Score {
	return score.New(a.cfg.Style())
}

// openOutput returns stdout for "" or "-", otherwise creates path.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
