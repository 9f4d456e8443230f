package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/engrave/internal/engraving/fret"
	"github.com/dshills/engrave/internal/engraving/score"
	"github.com/dshills/engrave/internal/engraving/xmlio"
)

// ErrNoDiagram reports an input holding no fret diagram.
var ErrNoDiagram = errors.New("no fret diagram found")

// input is a named source of diagrams: a pattern or a file.
type input struct {
	name     string
	diagrams []*fret.Diagram
}

// loadInput reads arg as a score file when it names an existing file and
// as a pattern such as "X32010" otherwise.
func loadInput(sc *score.Score, arg string) (input, error) {
	if fi, err := os.Stat(arg); err == nil && !fi.IsDir() {
		f, err := os.Open(arg)
		if err != nil {
			return input{}, err
		}
		defer f.Close()
		ds, err := readDiagrams(sc, f, arg)
		if err != nil {
			return input{}, err
		}
		return input{name: strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg)), diagrams: ds}, nil
	}
	if !isPattern(arg) {
		return input{}, fmt.Errorf("%q is neither a file nor a diagram pattern", arg)
	}
	return input{name: arg, diagrams: []*fret.Diagram{fret.CreateFromString(sc, arg)}}, nil
}

// isPattern reports whether s only holds pattern characters.
func isPattern(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("XxO-0123456789", c) {
			return false
		}
	}
	return true
}

// readDiagrams collects every FretDiagram element of a document, at any
// depth.
func readDiagrams(sc *score.Score, r io.Reader, source string) ([]*fret.Diagram, error) {
	xr := xmlio.NewReader(r, source)
	var ds []*fret.Diagram
	var walk func()
	walk = func() {
		for xr.ReadNextStartElement() {
			if xr.Name() == score.TypeFretDiagram.Name() {
				d := fret.New(sc.Dummy())
				d.Read(xr)
				ds = append(ds, d)
				continue
			}
			walk()
		}
	}
	walk()
	if err := xr.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if len(ds) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoDiagram)
	}
	return ds, nil
}

// writeDiagrams writes ds in the current file format. More than one
// diagram is wrapped in a FretDiagrams element.
func writeDiagrams(w io.Writer, ds []*fret.Diagram) error {
	xw := xmlio.NewWriter(w)
	xw.WriteHeader()
	if len(ds) > 1 {
		xw.StartElement("FretDiagrams")
	}
	for _, d := range ds {
		d.Write(xw)
	}
	if len(ds) > 1 {
		xw.EndElement()
	}
	return xw.Flush()
}

// writeMusicXML writes each diagram as a MusicXML frame.
func writeMusicXML(w io.Writer, ds []*fret.Diagram) error {
	xw := xmlio.NewWriter(w)
	xw.WriteHeader()
	if len(ds) > 1 {
		xw.StartElement("frames")
	}
	for _, d := range ds {
		d.WriteMusicXML(xw)
	}
	if len(ds) > 1 {
		xw.EndElement()
	}
	return xw.Flush()
}

// loadInputs loads every argument into one score.
func loadInputs(sc *score.Score, args []string) ([]*fret.Diagram, error) {
	var all []*fret.Diagram
	for _, arg := range args {
		in, err := loadInput(sc, arg)
		if err != nil {
			return nil, err
		}
		all = append(all, in.diagrams...)
	}
	return all, nil
}
