package loader

import (
	"strconv"
	"strings"
)

// DefaultEnvPrefix starts every style override variable:
// ENGRAVE_STYLE_FRET_STRING_SPACING=0.8 sets fretStringSpacing.
const DefaultEnvPrefix = "ENGRAVE_STYLE_"

// envAliases are short names for common overrides, after the prefix.
var envAliases = map[string]string{
	"SPATIUM": "spatium",
	"FONT":    "fretFont",
}

// Environment collects the style overrides in environ, a list of
// KEY=value pairs as from os.Environ. An empty value is kept as "".
func Environment(prefix string, environ []string) map[string]any {
	out := make(map[string]any)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		key, alias := envAliases[rest]
		if !alias {
			key = CamelCase(rest)
		}
		if key != "" {
			out[key] = ParseValue(value)
		}
	}
	return out
}

// ParseValue types a string the way environment and command line values
// are read: booleans, integers, decimals and otherwise the string itself.
func ParseValue(s string) any {
	switch strings.ToLower(s) {
	case "":
		return s
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Decimals need a point, so 1e3 stays a string.
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
