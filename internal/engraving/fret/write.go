package fret

import (
	"github.com/dshills/engrave/internal/engraving/score"
	"github.com/dshills/engrave/internal/engraving/xmlio"
)

// writtenProperties are written before any content, in this order.
var writtenProperties = []score.Pid{
	score.PidMinDistance,
	score.PidFretOffset,
	score.PidFretFrets,
	score.PidFretStrings,
	score.PidFretNut,
	score.PidMag,
	score.PidFretNumPos,
	score.PidOrientation,
}

// elementProperties are the generic properties following the diagram ones.
var elementProperties = []score.Pid{
	score.PidPlacement,
	score.PidAutoplace,
	score.PidOffset,
	score.PidColor,
	score.PidVisible,
}

// Write serializes the diagram: properties, chord symbol, the current
// format block and the legacy block for older readers.
func (d *Diagram) Write(w *xmlio.Writer) {
	w.StartElement(score.TypeFretDiagram.Name())
	for _, pid := range writtenProperties {
		score.WriteProperty(w, d, pid)
	}
	for _, pid := range elementProperties {
		score.WriteProperty(w, d, pid)
	}
	if d.harmony != nil {
		d.harmony.Write(w)
	}

	w.StartElement("fretDiagram")
	d.writeNew(w)
	w.EndElement()

	d.writeOld(w)
	w.EndElement()
}

// writeNew writes the current format: named markers, typed dots with a
// fret attribute and explicit barre ranges.
func (d *Diagram) writeNew(w *xmlio.Writer) {
	for s := 0; s < d.strings; s++ {
		m := d.Marker(s)
		hasDots := d.hasDots(s)
		if !hasDots && !m.Exists() {
			continue
		}
		w.StartElement("string", xmlio.A("no", s))
		if m.Exists() {
			w.Tag("marker", m.Type.String())
		}
		for _, dot := range d.dots[s] {
			if dot.Exists() {
				w.Tag("dot", dot.Type.String(), xmlio.A("fret", dot.Fret))
			}
		}
		w.EndElement()
	}

	for f := 1; f <= d.frets; f++ {
		b := d.Barre(f)
		if !b.Exists() {
			continue
		}
		w.Tag("barre", f, xmlio.A("start", b.Start), xmlio.A("end", b.End))
	}
}

// writeOld writes the legacy format, which knows a single barre flag. The
// flag is written only for an open barre at or below the lowest dotted
// fret that does not start right of the leftmost dot on that fret; a dot
// is added at the barre start so legacy readers can infer it.
func (d *Diagram) writeOld(w *xmlio.Writer) {
	lowestDotFret := -1
	furthestLeftLowestDot := -1
	for s := 0; s < d.strings; s++ {
		for _, dot := range d.dots[s] {
			if !dot.Exists() {
				continue
			}
			if dot.Fret < lowestDotFret || lowestDotFret == -1 {
				lowestDotFret = dot.Fret
				furthestLeftLowestDot = s
			} else if dot.Fret == lowestDotFret && (s < furthestLeftLowestDot || furthestLeftLowestDot == -1) {
				furthestLeftLowestDot = s
			}
		}
	}

	barreStartString := -1
	barreFret := -1
	for _, f := range sortedKeys(d.barres) {
		b := d.barres[f]
		if f <= lowestDotFret && b.End == -1 && !(f == lowestDotFret && b.Start > furthestLeftLowestDot) {
			barreStartString = b.Start
			barreFret = f
			break
		}
	}

	for s := 0; s < d.strings; s++ {
		m := d.Marker(s)
		if !d.hasDots(s) && !m.Exists() && s != barreStartString {
			continue
		}
		w.StartElement("string", xmlio.A("no", s))
		if m.Exists() {
			w.Tag("marker", m.Type.Char())
		}
		for _, dot := range d.dots[s] {
			if dot.Exists() && !(s == barreStartString && dot.Fret == barreFret) {
				w.Tag("dot", dot.Fret)
			}
		}
		if s == barreStartString {
			w.Tag("dot", barreFret)
		}
		w.EndElement()
	}

	if barreFret > 0 {
		w.Tag("barre", 1)
	}
}
