package fret

import (
	"github.com/dshills/engrave/internal/engraving/score"
	"github.com/dshills/engrave/internal/engraving/xmlio"
)

// Read deserializes the diagram from the current FretDiagram element. The
// current format block wins: once it is read, the legacy tags that follow
// are skipped. Legacy files mark a barre with a bare flag, which is turned
// into an open barre from the first string carrying a dot.
func (d *Diagram) Read(r *xmlio.Reader) {
	hasBarre := false
	haveReadNew := false

	for r.ReadNextStartElement() {
		tag := r.Name()
		if haveReadNew {
			r.SkipCurrentElement()
			continue
		}
		switch tag {
		case "fretDiagram":
			d.readNew(r)
			haveReadNew = true
		case "string":
			d.readOldString(r)
		case "barre":
			hasBarre = r.ReadBool()
		case score.TypeHarmony.Name():
			h := score.NewHarmony(d.Score(), "")
			h.Read(r)
			d.Add(h)
		default:
			if score.ReadStyledProperty(r, d, writtenProperties...) {
				continue
			}
			if score.ReadStyledProperty(r, d, elementProperties...) {
				continue
			}
			r.Unknown()
		}
	}

	if !hasBarre {
		return
	}
	for s := 0; s < d.strings; s++ {
		if dot := d.Dot(s, 0)[0]; dot.Exists() {
			d.SetBarre(s, -1, dot.Fret)
			break
		}
	}
}

// readOldString reads a legacy string element: integer fret dots and the
// marker as a character code.
func (d *Diagram) readOldString(r *xmlio.Reader) {
	no := r.IntAttribute("no", 0)
	for r.ReadNextStartElement() {
		switch r.Name() {
		case "dot":
			d.SetDot(no, r.ReadInt(), false, DotNormal)
		case "marker":
			if rune(r.ReadInt()) == MarkerCross.Char() {
				d.SetMarker(no, MarkerCross)
			} else {
				d.SetMarker(no, MarkerCircle)
			}
		default:
			r.Unknown()
		}
	}
}

// readNew reads the current format block.
func (d *Diagram) readNew(r *xmlio.Reader) {
	for r.ReadNextStartElement() {
		switch r.Name() {
		case "string":
			no := r.IntAttribute("no", 0)
			for r.ReadNextStartElement() {
				switch r.Name() {
				case "dot":
					f := r.IntAttribute("fret", 0)
					d.SetDot(no, f, true, ParseDotType(r.ReadText()))
				case "marker":
					d.SetMarker(no, ParseMarkerType(r.ReadText()))
				case "fingering":
					r.ReadText()
				default:
					r.Unknown()
				}
			}
		case "barre":
			start := r.IntAttribute("start", -1)
			end := r.IntAttribute("end", -1)
			f := r.ReadInt()
			d.SetBarre(start, end, f)
		default:
			r.Unknown()
		}
	}
}
