package fret

import (
	"slices"

	"github.com/dshills/engrave/internal/engraving/xmlio"
)

// WriteMusicXML writes the diagram as a MusicXML frame. MusicXML numbers
// strings from the highest, so string i becomes strings-i. Open circles
// are fret 0; crossed strings are omitted. Barres are expressed as start
// and stop marks on frame notes, reusing a dot where one sits on the barre
// end and adding a bare frame note otherwise.
func (d *Diagram) WriteMusicXML(w *xmlio.Writer) {
	w.StartElement("frame")
	w.Tag("frame-strings", d.strings)
	w.Tag("frame-frets", d.frets)
	if d.fretOffset > 0 {
		w.Tag("first-fret", d.fretOffset+1)
	}

	for i := 0; i < d.strings; i++ {
		mxmlString := d.strings - i

		var starts, ends []int
		for _, f := range sortedKeys(d.barres) {
			b := d.barres[f]
			if b.Start == i {
				starts = append(starts, f)
			} else if b.End == i || (b.End == -1 && mxmlString == 1) {
				ends = append(ends, f)
			}
		}

		if d.Marker(i).Type == MarkerCircle {
			writeFrameNote(w, mxmlString, 0, "")
		}

		for _, dot := range d.dots[i] {
			if !dot.Exists() {
				continue
			}
			barre := ""
			if j := slices.Index(starts, dot.Fret); j >= 0 {
				barre = "start"
				starts = slices.Delete(starts, j, j+1)
			} else if j := slices.Index(ends, dot.Fret); j >= 0 {
				barre = "stop"
				ends = slices.Delete(ends, j, j+1)
			}
			writeFrameNote(w, mxmlString, dot.Fret+d.fretOffset, barre)
		}

		for _, f := range starts {
			writeFrameNote(w, mxmlString, f+d.fretOffset, "start")
		}
		for _, f := range ends {
			writeFrameNote(w, mxmlString, f+d.fretOffset, "stop")
		}
	}

	w.EndElement()
}

func writeFrameNote(w *xmlio.Writer, str, fret int, barre string) {
	w.StartElement("frame-note")
	w.Tag("string", str)
	w.Tag("fret", fret)
	if barre != "" {
		w.EmptyTag("barre", xmlio.A("type", barre))
	}
	w.EndElement()
}
