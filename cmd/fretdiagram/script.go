package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/engrave/internal/engraving/fret"
	"github.com/dshills/engrave/internal/script"
)

func newScriptCmd(a *app) *cobra.Command {
	var (
		out     string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "script [flags] SCRIPT.lua [FILE|PATTERN]",
		Short: "Edit a diagram with a Lua script",
		Long: `Script runs a Lua file against the first diagram of the input, or an
empty diagram, and writes the result as score XML. The script sees a fret
module with dot, marker, barre, clear, strings, frets, offset, harmony,
state, apply and ascii.`,
		Example: "  fretdiagram script barre.lua X32010 -o out.xml",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.newScore()
			d := fret.New(sc.Dummy())
			if len(args) == 2 {
				in, err := loadInput(sc, args[1])
				if err != nil {
					return err
				}
				d = in.diagrams[0]
			}

			eng := script.New(d,
				script.WithOutput(cmd.ErrOrStderr()),
				script.WithTimeout(timeout),
				script.WithLogger(a.logger),
			)
			defer eng.Close()
			if err := eng.DoFile(cmd.Context(), args[0]); err != nil {
				return err
			}
			return a.emit(cmd, out, []*fret.Diagram{d}, writeDiagrams)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().DurationVar(&timeout, "timeout", script.DefaultTimeout, "script time limit (0 disables)")
	return cmd
}
