package fret

import "github.com/dshills/engrave/internal/engraving/score"

// GetProperty implements score.Element.
func (d *Diagram) GetProperty(pid score.Pid) any {
	switch pid {
	case score.PidMag:
		return d.userMag
	case score.PidFretStrings:
		return d.strings
	case score.PidFretFrets:
		return d.frets
	case score.PidFretNut:
		return d.showNut
	case score.PidFretOffset:
		return d.fretOffset
	case score.PidFretNumPos:
		return int(d.numPos)
	case score.PidOrientation:
		return d.orientation
	}
	return d.ElementBase.GetProperty(pid)
}

// SetProperty implements score.Element. A value of the wrong type is
// rejected.
func (d *Diagram) SetProperty(pid score.Pid, v any) bool {
	switch pid {
	case score.PidMag:
		m, ok := v.(float64)
		if !ok {
			return false
		}
		d.SetUserMag(m)
	case score.PidFretStrings:
		n, ok := v.(int)
		if !ok {
			return false
		}
		d.SetStrings(n)
	case score.PidFretFrets:
		n, ok := v.(int)
		if !ok {
			return false
		}
		d.SetFrets(n)
	case score.PidFretNut:
		b, ok := v.(bool)
		if !ok {
			return false
		}
		d.SetShowNut(b)
	case score.PidFretOffset:
		n, ok := v.(int)
		if !ok {
			return false
		}
		d.SetFretOffset(n)
	case score.PidFretNumPos:
		n, ok := v.(int)
		if !ok {
			return false
		}
		d.numPos = NumberPosition(n)
	case score.PidOrientation:
		o, ok := v.(score.Orientation)
		if !ok {
			return false
		}
		d.orientation = o
	default:
		return d.ElementBase.SetProperty(pid, v)
	}
	d.TriggerLayout()
	return true
}

// PropertyDefault implements score.Element. The fret offset is not styled
// and defaults to 0; the other diagram properties follow the style.
func (d *Diagram) PropertyDefault(pid score.Pid) any {
	if pid == score.PidFretOffset {
		return 0
	}
	return d.ElementBase.PropertyDefault(pid)
}
