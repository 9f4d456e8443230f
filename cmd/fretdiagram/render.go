package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/engrave/internal/engraving/draw"
	"github.com/dshills/engrave/internal/engraving/fret"
	"github.com/dshills/engrave/internal/engraving/geom"
	"github.com/dshills/engrave/internal/render/raster"
	"github.com/dshills/engrave/internal/render/record"
	"github.com/dshills/engrave/internal/render/vector"
)

type renderOptions struct {
	format string
	outDir string
	dpi    float64
	jobs   int
}

func newRenderCmd(a *app) *cobra.Command {
	opts := renderOptions{format: "png", outDir: "."}
	cmd := &cobra.Command{
		Use:   "render [flags] FILE|PATTERN...",
		Short: "Render diagrams to PNG or SVG files",
		Long: `Render lays out every diagram of the inputs and writes one image per
diagram into the output directory. Inputs are rendered in parallel.

The trace format writes the painter calls as text instead of an image.`,
		Example: "  fretdiagram render --format svg -d out X32010 chords.xml",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := a.renderAll(cmd.Context(), args, opts)
			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("wrote"), path)
			}
			return err
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", opts.format, "image format (png|svg|trace)")
	f.StringVarP(&opts.outDir, "out-dir", "d", opts.outDir, "output directory")
	f.Float64Var(&opts.dpi, "dpi", 0, "output resolution (default 300 for png, 96 for svg)")
	f.IntVarP(&opts.jobs, "jobs", "j", 0, "parallel inputs (default GOMAXPROCS)")
	return cmd
}

// renderAll renders every input on its own score. It returns the written
// paths in input order.
func (a *app) renderAll(ctx context.Context, args []string, opts renderOptions) ([]string, error) {
	switch opts.format {
	case "png", "svg", "trace":
	default:
		return nil, fmt.Errorf("unknown format %q", opts.format)
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	jobs := opts.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// indexes are unique per goroutine
	results := make([][]string, len(args))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(args)))
	for i, arg := range args {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			in, err := loadInput(a.newScore(), arg)
			if err != nil {
				return err
			}
			paths, err := writeImages(in, opts)
			results[i] = paths
			if err != nil {
				return fmt.Errorf("%s: %w", arg, err)
			}
			a.logger.Debug("rendered input", "input", arg, "images", len(paths))
			return nil
		})
	}
	err := g.Wait()

	var written []string
	for _, paths := range results {
		written = append(written, paths...)
	}
	return written, err
}

// writeImages writes one image per diagram of in.
func writeImages(in input, opts renderOptions) ([]string, error) {
	var written []string
	for i, d := range in.diagrams {
		name := in.name
		if len(in.diagrams) > 1 {
			name = fmt.Sprintf("%s-%d", name, i+1)
		}
		ext := opts.format
		if ext == "trace" {
			ext = "txt"
		}
		path := filepath.Join(opts.outDir, name+"."+ext)

		f, err := os.Create(path)
		if err != nil {
			return written, err
		}
		err = renderDiagram(f, d, opts)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// renderDiagram lays d out and writes it in opts.format.
func renderDiagram(w io.Writer, d *fret.Diagram, opts renderOptions) error {
	bbox, paint := diagramPainting(d)
	switch opts.format {
	case "trace":
		p := record.New()
		paint(p)
		return p.Dump(w)
	case "svg":
		vo := vector.DefaultOptions()
		if opts.dpi > 0 {
			vo.DPI = opts.dpi
		}
		return vector.Render(w, bbox, vo, paint)
	default:
		ro := raster.DefaultOptions()
		if opts.dpi > 0 {
			ro.DPI = opts.dpi
		}
		return raster.RenderPNG(w, bbox, ro, paint)
	}
}

// diagramPainting lays d out and returns the area covering it and its
// chord symbol with a function painting both.
func diagramPainting(d *fret.Diagram) (geom.RectF, func(draw.Painter)) {
	d.Layout()
	bbox := d.BBox()
	h := d.Harmony()
	if h != nil && h.Text() != "" {
		bbox = bbox.United(h.BBox().Translated(h.Pos()))
	}
	return bbox, func(p draw.Painter) {
		d.Draw(p)
		if h != nil {
			p.Save()
			p.Translate(h.Pos())
			h.Draw(p)
			p.Restore()
		}
	}
}
