package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/engrave/internal/engraving/fret"
)

func newParseCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "parse [flags] PATTERN...",
		Short: "Build diagrams from patterns and write them as score XML",
		Long: `Parse builds one diagram per pattern. A pattern has one character per
string: X mutes, O marks open, a digit places a dot on that fret and the
first '-' starts a barre on the top fret.`,
		Example: "  fretdiagram parse X32010 320003",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.newScore()
			ds := make([]*fret.Diagram, 0, len(args))
			for _, p := range args {
				if !isPattern(p) {
					return fmt.Errorf("invalid pattern %q", p)
				}
				ds = append(ds, fret.CreateFromString(sc, p))
			}
			return a.emit(cmd, out, ds, writeDiagrams)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newConvertCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "convert [flags] FILE...",
		Short: "Rewrite fret diagrams in the current file format",
		Long: `Convert reads every FretDiagram of the given files, legacy or current,
and writes them back in the current format, which still carries the legacy
block for older readers.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadInputs(a.newScore(), args)
			if err != nil {
				return err
			}
			return a.emit(cmd, out, ds, writeDiagrams)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export [flags] FILE|PATTERN...",
		Short: "Export diagrams as MusicXML frames",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadInputs(a.newScore(), args)
			if err != nil {
				return err
			}
			return a.emit(cmd, out, ds, writeMusicXML)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

// emit writes ds with write to the output named by path.
func (a *app) emit(cmd *cobra.Command, path string, ds []*fret.Diagram, write func(w io.Writer, ds []*fret.Diagram) error) error {
	w, closeFn, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	if err := write(w, ds); err != nil {
		_ = closeFn()
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}
	a.logger.Debug("wrote diagrams", "count", len(ds), "output", path)
	return nil
}
