package score

import (
	"image/color"
	"strconv"

	"github.com/dshills/engrave/internal/engraving/geom"
	"github.com/dshills/engrave/internal/engraving/style"
	"github.com/dshills/engrave/internal/engraving/xmlio"
)

// styleToProperty converts a raw style value to the property's Go type.
func styleToProperty(pid Pid, v any) any {
	switch pid.Type() {
	case PTypeInt:
		return toInt(v)
	case PTypeReal:
		switch x := v.(type) {
		case float64:
			return x
		case int:
			return float64(x)
		case style.Spatium:
			return float64(x)
		}
	case PTypeBool:
		if b, ok := v.(bool); ok {
			return b
		}
		return toInt(v) != 0
	case PTypeSpatium:
		switch x := v.(type) {
		case style.Spatium:
			return x
		case float64:
			return style.Spatium(x)
		}
	case PTypeOrientation:
		return Orientation(toInt(v))
	case PTypePlacement:
		return Placement(toInt(v))
	}
	return v
}

func toInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case float64:
		return int(x)
	case style.Spatium:
		return int(x)
	case bool:
		if x {
			return 1
		}
	case Orientation:
		return int(x)
	case Placement:
		return int(x)
	}
	return 0
}

// WriteProperty writes pid of e when it differs from its default.
func WriteProperty(w *xmlio.Writer, e Element, pid Pid) {
	v := e.GetProperty(pid)
	if v == nil {
		return
	}
	if v == e.PropertyDefault(pid) {
		return
	}
	switch x := v.(type) {
	case style.Spatium:
		w.Tag(pid.Name(), float64(x))
	case Orientation:
		w.Tag(pid.Name(), x.String())
	case Placement:
		w.Tag(pid.Name(), x.String())
	case geom.PointF:
		sp := e.Base().Spatium()
		w.EmptyTag(pid.Name(), xmlio.A("x", x.X/sp), xmlio.A("y", x.Y/sp))
	case color.RGBA:
		w.EmptyTag(pid.Name(),
			xmlio.A("r", int(x.R)), xmlio.A("g", int(x.G)),
			xmlio.A("b", int(x.B)), xmlio.A("a", int(x.A)))
	default:
		w.Tag(pid.Name(), x)
	}
}

// ReadProperty reads the current element as the value of pid and applies
// it to e, marking styleable properties unstyled. It reports whether the
// value was accepted.
func ReadProperty(r *xmlio.Reader, e Element, pid Pid) bool {
	var v any
	switch pid.Type() {
	case PTypeInt:
		v = r.ReadInt()
	case PTypeReal:
		v = r.ReadDouble()
	case PTypeBool:
		v = r.ReadBool()
	case PTypeSpatium:
		v = style.Spatium(r.ReadDouble())
	case PTypeOrientation:
		v = ParseOrientation(r.ReadText())
	case PTypePlacement:
		v = ParsePlacement(r.ReadText())
	case PTypePoint:
		sp := e.Base().Spatium()
		x := attrFloat(r, "x")
		y := attrFloat(r, "y")
		r.SkipCurrentElement()
		v = geom.Pt(x*sp, y*sp)
	case PTypeColor:
		c := color.RGBA{
			R: uint8(r.IntAttribute("r", 0)),
			G: uint8(r.IntAttribute("g", 0)),
			B: uint8(r.IntAttribute("b", 0)),
			A: uint8(r.IntAttribute("a", 255)),
		}
		r.SkipCurrentElement()
		v = c
	}
	if !e.SetProperty(pid, v) {
		return false
	}
	b := e.Base()
	if _, ok := b.StyledSid(pid); ok {
		b.SetPropertyFlags(pid, Unstyled)
	}
	return true
}

// ReadStyledProperty reads the current tag when it names one of e's
// properties in pids. It reports whether the tag was consumed.
func ReadStyledProperty(r *xmlio.Reader, e Element, pids ...Pid) bool {
	pid, ok := PidByName(r.Name())
	if !ok {
		return false
	}
	for _, p := range pids {
		if p == pid {
			ReadProperty(r, e, pid)
			return true
		}
	}
	return false
}

func attrFloat(r *xmlio.Reader, name string) float64 {
	s, ok := r.Attribute(name)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
