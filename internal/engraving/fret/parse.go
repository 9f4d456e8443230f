package fret

import "github.com/dshills/engrave/internal/engraving/score"

// patternVisibleFrets is the number of frets a parsed diagram shows.
const patternVisibleFrets = 4

// CreateFromString builds a diagram on the score's dummy segment from a
// pattern with one character per string: 'X' mutes the string, 'O' marks
// it open, the first '-' starts a barre on the top fret that runs to the
// last string and a digit places a dot. When the highest digit is above 3
// the diagram is shifted so that fret sits on the last visible row.
func CreateFromString(s *score.Score, pattern string) *Diagram {
	d := New(s.Dummy())
	chars := []rune(pattern)
	strings := len(chars)

	d.SetStrings(strings)
	d.SetFrets(patternVisibleFrets)
	d.SetPropertyFlags(score.PidFretStrings, score.Unstyled)
	d.SetPropertyFlags(score.PidFretFrets, score.Unstyled)

	offset := 0
	barreString := -1
	type pending struct{ str, fret int }
	var dots []pending

	for i, c := range chars {
		switch {
		case c == 'X' || c == 'O':
			t := MarkerCircle
			if c == 'X' {
				t = MarkerCross
			}
			d.SetMarker(i, t)
		case c == '-' && barreString == -1:
			barreString = i
		case c >= '0' && c <= '9':
			f := int(c - '0')
			dots = append(dots, pending{i, f})
			if f-3 > 0 && offset < f-3 {
				offset = f - 3
			}
		}
	}

	if offset > 0 {
		d.SetFretOffset(offset)
	}
	for _, p := range dots {
		d.SetDot(p.str, p.fret-offset, true, DotNormal)
	}
	if barreString >= 0 {
		d.SetBarre(barreString, -1, 1)
	}
	return d
}
