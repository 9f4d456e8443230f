package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/engrave/internal/engraving/fret"
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
)

func newShowCmd(a *app) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:     "show [flags] FILE|PATTERN...",
		Short:   "Print diagrams as text",
		Example: "  fretdiagram show X32010 x02210",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.newScore()
			var frames []string
			for _, arg := range args {
				in, err := loadInput(sc, arg)
				if err != nil {
					return err
				}
				for _, d := range in.diagrams {
					frames = append(frames, showDiagram(d, in.name, plain))
				}
			}
			if plain {
				fmt.Fprint(cmd.OutOrStdout(), strings.Join(frames, "\n"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), lipgloss.JoinHorizontal(lipgloss.Top, frames...))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "no frames, one diagram after another")
	return cmd
}

// showDiagram renders d as text under a title: its chord symbol when it
// has one, name otherwise.
func showDiagram(d *fret.Diagram, name string, plain bool) string {
	title := name
	if h := d.Harmony(); h != nil && h.Text() != "" {
		title = h.Text()
	}
	body := strings.TrimSuffix(d.ASCII(), "\n")
	if plain {
		return title + "\n" + body + "\n"
	}
	return frameStyle.Render(titleStyle.Render(title) + "\n" + body)
}
