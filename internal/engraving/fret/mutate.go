package fret

// SetDot places a dot on string s at fret f. Fret 0 removes every dot of
// the string. With add, an existing dot at f is toggled off; without it
// the string keeps a single dot and loses its marker. Strings or frets out
// of range are ignored.
func (d *Diagram) SetDot(s, f int, add bool, t DotType) {
	if f == 0 {
		d.RemoveDot(s, 0)
		return
	}
	if s < 0 || s >= d.strings || f < 0 {
		return
	}
	if add {
		if d.Dot(s, f)[0].Exists() {
			d.RemoveDot(s, f)
			return
		}
	} else {
		delete(d.dots, s)
	}
	d.dots[s] = append(d.dots[s], Dot{Fret: f, Type: t})
	if !add {
		d.SetMarker(s, MarkerNone)
	}
}

// SetMarker sets the marker of string s. A visible marker clears the
// string's dots and every barre crossing it; MarkerNone removes the marker.
func (d *Diagram) SetMarker(s int, t MarkerType) {
	if s < 0 || s >= d.strings {
		return
	}
	if t == MarkerNone {
		delete(d.markers, s)
		return
	}
	d.markers[s] = Marker{Type: t}
	d.RemoveDot(s, 0)
	d.RemoveBarres(s, 0)
}

// SetBarre stores a barre on fret f from start to end. End -1 runs to the
// last string; start -1 removes the barre on f. Frets below 1 are ignored.
func (d *Diagram) SetBarre(start, end, f int) {
	if f < 1 {
		return
	}
	if start == -1 {
		d.RemoveBarre(f)
		return
	}
	if start >= 0 && end >= -1 && start < d.strings && end < d.strings {
		d.barres[f] = Barre{Start: start, End: end}
	}
}

// ToggleBarre is the interactive barre edit on string s at fret f. Without
// a barre on f one is opened at s. An open barre starting left of s is
// closed at s. Any other barre is removed together with the dots and
// markers under it. Strings out of range and frets below 1 are ignored.
func (d *Diagram) ToggleBarre(s, f int) {
	if s < 0 || s >= d.strings || f < 1 {
		return
	}
	b := d.Barre(f)
	switch {
	case !b.Exists():
		if s < d.strings-1 {
			d.barres[f] = Barre{Start: s, End: -1}
			d.RemoveDotsMarkers(s, -1, f)
		}
	case b.End == -1 && b.Start < s:
		b.End = s
		d.barres[f] = b
	default:
		d.RemoveDotsMarkers(b.Start, b.End, f)
		d.RemoveBarre(f)
	}
}

// RemoveBarre removes the barre on fret f.
func (d *Diagram) RemoveBarre(f int) {
	delete(d.barres, f)
}

// RemoveBarres removes the barres crossing string s. A positive fret
// restricts removal to the barre on that fret.
func (d *Diagram) RemoveBarres(s, f int) {
	for bf, b := range d.barres {
		if b.Start > s || (b.End < s && b.End != -1) {
			continue
		}
		if f > 0 && f != bf {
			continue
		}
		delete(d.barres, bf)
	}
}

// RemoveMarker removes the marker of string s.
func (d *Diagram) RemoveMarker(s int) {
	delete(d.markers, s)
}

// RemoveDot removes the dot at fret f of string s, or every dot of the
// string when f is 0.
func (d *Diagram) RemoveDot(s, f int) {
	ds, ok := d.dots[s]
	if !ok {
		return
	}
	if f > 0 {
		kept := ds[:0:0]
		for _, dot := range ds {
			if dot.Exists() && dot.Fret != f {
				kept = append(kept, dot)
			}
		}
		ds = kept
	} else {
		ds = nil
	}
	if len(ds) == 0 {
		delete(d.dots, s)
		return
	}
	d.dots[s] = ds
}

// RemoveDotsMarkers removes the dots at fret f and the markers of strings
// ss through es. End -1 runs to the last string.
func (d *Diagram) RemoveDotsMarkers(ss, es, f int) {
	if ss == -1 {
		return
	}
	end := es
	if es == -1 {
		end = d.strings
	}
	for s := ss; s <= end; s++ {
		d.RemoveDot(s, f)
		d.RemoveMarker(s)
	}
}

// Clear removes every dot, marker and barre. The chord symbol is kept.
func (d *Diagram) Clear() {
	clear(d.barres)
	clear(d.dots)
	clear(d.markers)
}

// SetStrings changes the string count. Strings are added or removed on the
// left, so every dot, marker and barre shifts by the difference. Entries
// pushed below string 0 are dropped; barres whose start falls off are
// clamped to string 0 when their end survives.
func (d *Diagram) SetStrings(n int) {
	diff := n - d.strings
	if diff == 0 || n <= 0 {
		return
	}

	dots := make(map[int][]Dot, len(d.dots))
	markers := make(map[int]Marker, len(d.markers))
	for s := 0; s < d.strings; s++ {
		if s+diff < 0 {
			continue
		}
		for _, dot := range d.dots[s] {
			if dot.Exists() {
				dots[s+diff] = append(dots[s+diff], dot)
			}
		}
		if m := d.Marker(s); m.Exists() {
			markers[s+diff] = m
		}
	}
	d.dots = dots
	d.markers = markers

	for f, b := range d.barres {
		if b.End != -1 {
			if b.End+diff < 0 {
				delete(d.barres, f)
				continue
			}
			b.End += diff
		}
		b.Start = max(0, b.Start+diff)
		d.barres[f] = b
	}

	d.strings = n
}
