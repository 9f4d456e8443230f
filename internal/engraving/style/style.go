// Package style holds the score style sheet: named settings with defaults
// that engraving elements resolve their styled properties against.
package style

import (
	"fmt"
	"math"
)

// Resolution constants. Lengths are expressed in pixels at DPI.
const (
	DPI            = 360.0
	DPMM           = DPI / 25.4
	Spatium20      = 5.0 * (DPI / 72.0)
	DefaultSpatium = 1.75 * DPMM
)

// Spatium is a length measured in staff spaces.
type Spatium float64

// Val returns the raw staff space count.
func (s Spatium) Val() float64 { return float64(s) }

// Style is a score style sheet. The zero value is not usable; use New.
type Style struct {
	values [sidCount]any
}

// New returns a style sheet populated with defaults.
func New() *Style {
	s := &Style{}
	for i := SidInvalid + 1; i < sidCount; i++ {
		s.values[i] = sidTable[i].def
	}
	return s
}

// Clone returns an independent copy.
func (s *Style) Clone() *Style {
	c := *s
	return &c
}

// Default returns the built-in default for sid.
func Default(sid Sid) any {
	if sid <= SidInvalid || sid >= sidCount {
		return nil
	}
	return sidTable[sid].def
}

// Value returns the raw value stored for sid.
func (s *Style) Value(sid Sid) any {
	if sid <= SidInvalid || sid >= sidCount {
		return nil
	}
	return s.values[sid]
}

// Set stores v for sid after coercing it to the sid's kind.
func (s *Style) Set(sid Sid, v any) error {
	if sid <= SidInvalid || sid >= sidCount {
		return fmt.Errorf("%w: %d", ErrUnknownStyle, int(sid))
	}
	cv, err := coerce(sid.Kind(), v)
	if err != nil {
		return fmt.Errorf("style %s: %w", sid, err)
	}
	s.values[sid] = cv
	return nil
}

// Spatium returns the score's spatium in pixels.
func (s *Style) Spatium() float64 {
	return s.D(SidSpatium)
}

// D returns a scalar value. Spatium values are returned in staff spaces.
func (s *Style) D(sid Sid) float64 {
	switch v := s.Value(sid).(type) {
	case float64:
		return v
	case Spatium:
		return float64(v)
	case int:
		return float64(v)
	case bool:
		if v {
			return 1
		}
	}
	return 0
}

// I returns an integer value.
func (s *Style) I(sid Sid) int {
	switch v := s.Value(sid).(type) {
	case int:
		return v
	case float64:
		return int(math.Round(v))
	case Spatium:
		return int(math.Round(float64(v)))
	case bool:
		if v {
			return 1
		}
	}
	return 0
}

// B returns a boolean value.
func (s *Style) B(sid Sid) bool {
	switch v := s.Value(sid).(type) {
	case bool:
		return v
	case int:
		return v != 0
	case float64:
		return v != 0
	}
	return false
}

// S returns a string value.
func (s *Style) S(sid Sid) string {
	if v, ok := s.Value(sid).(string); ok {
		return v
	}
	return ""
}

// SP returns a spatium typed value.
func (s *Style) SP(sid Sid) Spatium {
	return Spatium(s.D(sid))
}

// MM resolves a spatium value to pixels using the current spatium.
// Non-spatium values are returned unchanged.
func (s *Style) MM(sid Sid) float64 {
	if sid.Kind() == KindSpatium {
		return s.D(sid) * s.Spatium()
	}
	return s.D(sid)
}

// P is MM under the name used for point-valued positions.
func (s *Style) P(sid Sid) float64 {
	return s.MM(sid)
}

func coerce(kind Kind, v any) (any, error) {
	switch kind {
	case KindDouble:
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: want number, got %T", ErrTypeMismatch, v)
		}
		return f, nil
	case KindSpatium:
		if sp, ok := v.(Spatium); ok {
			return sp, nil
		}
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: want number, got %T", ErrTypeMismatch, v)
		}
		return Spatium(f), nil
	case KindInt:
		f, ok := toFloat(v)
		if !ok {
			if b, isBool := v.(bool); isBool {
				if b {
					return 1, nil
				}
				return 0, nil
			}
			return nil, fmt.Errorf("%w: want integer, got %T", ErrTypeMismatch, v)
		}
		return int(math.Round(f)), nil
	case KindBool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			switch b {
			case "true", "1", "yes", "on":
				return true, nil
			case "false", "0", "no", "off":
				return false, nil
			}
		}
		if f, ok := toFloat(v); ok {
			return f != 0, nil
		}
		return nil, fmt.Errorf("%w: want bool, got %T", ErrTypeMismatch, v)
	case KindString:
		if str, ok := v.(string); ok {
			return str, nil
		}
		return fmt.Sprint(v), nil
	}
	return nil, fmt.Errorf("%w: unknown kind %d", ErrTypeMismatch, kind)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case Spatium:
		return float64(n), true
	}
	return 0, false
}
