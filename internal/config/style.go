package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dshills/engrave/internal/engraving/style"
)

// enumNames maps the style sheet names of enum styles to their values.
var enumNames = map[style.Sid]map[string]int{
	style.SidFretOrientation: {"vertical": 0, "horizontal": 1},
	style.SidFretPlacement:   {"above": 0, "below": 1},
	style.SidFretNumPos:      {"left": 0, "right": 1},
}

// positive lists styles that must be greater than zero.
var positive = []style.Sid{
	style.SidSpatium,
	style.SidFretStrings,
	style.SidFretFrets,
	style.SidFretStringSpacing,
	style.SidFretFretSpacing,
	style.SidFretMag,
	style.SidFretNumMag,
}

// defaultSheet returns the built-in style in style sheet units.
func defaultSheet() map[string]any {
	data := make(map[string]any)
	for _, sid := range style.All() {
		data[sid.Name()] = style.Default(sid)
	}
	data[style.SidSpatium.Name()] = style.DefaultSpatium / style.DPMM
	return data
}

// sheetValue converts a style sheet value to the form style.Set expects:
// enum names become integers and spatium is converted from millimetres.
func sheetValue(sid style.Sid, v any) (any, error) {
	if names, ok := enumNames[sid]; ok {
		if s, isStr := v.(string); isStr {
			n, known := names[strings.ToLower(s)]
			if !known {
				return nil, fmt.Errorf("%q is not one of %s", s, strings.Join(sortedNames(names), ", "))
			}
			return n, nil
		}
	}
	if sid == style.SidSpatium {
		switch n := v.(type) {
		case float64:
			return n * style.DPMM, nil
		case int64:
			return float64(n) * style.DPMM, nil
		case int:
			return float64(n) * style.DPMM, nil
		}
		return nil, fmt.Errorf("want millimetres, got %T", v)
	}
	return v, nil
}

func sortedNames(names map[string]int) []string {
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// buildStyle applies a merged flat sheet to a new style. Unknown keys are
// logged; invalid values are collected into the returned error.
func buildStyle(sheet map[string]any, source func(key string) string, logger *slog.Logger) (*style.Style, error) {
	st := style.New()
	keys := make([]string, 0, len(sheet))
	for k := range sheet {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var errs []error
	for _, key := range keys {
		v := sheet[key]
		sid, ok := style.SidByName(key)
		if !ok {
			logger.Warn("ignoring unknown style key", "key", key, "sheet", source(key))
			continue
		}
		if err := applyValue(st, sid, v); err != nil {
			errs = append(errs, &ValueError{Key: key, Value: v, Sheet: source(key), Err: err})
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return st, nil
}

func applyValue(st *style.Style, sid style.Sid, v any) error {
	sv, err := sheetValue(sid, v)
	if err != nil {
		return err
	}
	if err := st.Set(sid, sv); err != nil {
		return err
	}
	if slices.Contains(positive, sid) && st.D(sid) <= 0 {
		return errors.New("must be greater than zero")
	}
	return nil
}

// checkValue validates a single value without a full rebuild.
func checkValue(key string, v any) error {
	sid, ok := style.SidByName(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := applyValue(style.New(), sid, v); err != nil {
		return &ValueError{Key: key, Value: v, Err: err}
	}
	return nil
}
