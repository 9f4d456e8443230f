package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/engrave/internal/editor"
	"github.com/dshills/engrave/internal/engraving/fret"
)

func newEditCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "edit [flags] [FILE|PATTERN]",
		Short: "Edit a diagram in the terminal",
		Long: `Edit opens the first diagram of the input, or an empty diagram, in an
interactive terminal editor. Press ? for keys. On quit the diagram is
written as score XML to the output, when one is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.newScore()
			d := fret.New(sc.Dummy())
			if len(args) == 1 {
				in, err := loadInput(sc, args[0])
				if err != nil {
					return err
				}
				d = in.diagrams[0]
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("create terminal: %w", err)
			}
			ed := editor.New(screen, d, editor.WithLogger(a.logger))
			if err := ed.Run(cmd.Context()); err != nil {
				return err
			}

			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), d.ASCII())
				return nil
			}
			return a.emit(cmd, out, []*fret.Diagram{d}, writeDiagrams)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the edited diagram to this file")
	return cmd
}
