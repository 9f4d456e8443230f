package loader

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// overlay copies src over dst, merging nested tables.
func overlay(dst, src map[string]any) map[string]any {
	for k, sv := range src {
		dm, dok := dst[k].(map[string]any)
		sm, sok := sv.(map[string]any)
		if dok && sok {
			dst[k] = overlay(dm, sm)
			continue
		}
		dst[k] = sv
	}
	return dst
}

// Flatten joins table names onto their keys: a "fret" table holding
// "stringSpacing" becomes "fretStringSpacing". A top level "style" table
// adds no prefix.
func Flatten(tree map[string]any) map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", tree)
	return out
}

func flattenInto(out map[string]any, prefix string, tree map[string]any) {
	for k, v := range tree {
		key := joinKey(prefix, k)
		if prefix == "" && k == "style" {
			key = ""
		}
		if sub, ok := v.(map[string]any); ok {
			flattenInto(out, key, sub)
			continue
		}
		out[key] = v
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	r, n := utf8.DecodeRuneInString(key)
	return prefix + string(unicode.ToUpper(r)) + key[n:]
}

// CamelCase turns FRET_STRING_SPACING into fretStringSpacing.
func CamelCase(name string) string {
	var b strings.Builder
	for p := range strings.SplitSeq(strings.ToLower(name), "_") {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			p = strings.ToUpper(p[:1]) + p[1:]
		}
		b.WriteString(p)
	}
	return b.String()
}
