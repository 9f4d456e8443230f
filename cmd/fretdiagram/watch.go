package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/engrave/internal/config/notify"
)

func newWatchCmd(a *app) *cobra.Command {
	opts := renderOptions{format: "png", outDir: "."}
	cmd := &cobra.Command{
		Use:   "watch [flags] FILE|PATTERN...",
		Short: "Re-render diagrams whenever a style sheet changes",
		Long: `Watch renders the inputs like render, then watches the style sheets
given with --style and renders again after each change until interrupted.`,
		Example: "  fretdiagram watch -s house.toml -f svg X32010",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			changed := make(chan struct{}, 1)
			sub := a.cfg.Subscribe(func(c notify.Change) {
				a.logger.Debug("style changed", "key", c.Key, "source", c.Source)
				select {
				case changed <- struct{}{}:
				default:
				}
			})
			defer sub.Unsubscribe()

			render := func() {
				written, err := a.renderAll(ctx, args, opts)
				for _, path := range written {
					fmt.Fprintln(out, color.GreenString("wrote"), path)
				}
				if err != nil {
					fmt.Fprintln(out, color.YellowString("render failed:"), err)
				}
			}

			render()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-changed:
					render()
				}
			}
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", opts.format, "image format (png|svg)")
	f.StringVarP(&opts.outDir, "out-dir", "d", opts.outDir, "output directory")
	f.Float64Var(&opts.dpi, "dpi", 0, "output resolution")
	f.IntVarP(&opts.jobs, "jobs", "j", 0, "parallel inputs (default GOMAXPROCS)")
	return cmd
}
