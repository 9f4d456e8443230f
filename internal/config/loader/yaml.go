package loader

import (
	"gopkg.in/yaml.v3"
)

func decodeYAML(name string, data []byte) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}
	tree := map[string]any{}
	if len(doc.Content) == 0 {
		return tree, nil
	}
	if err := doc.Content[0].Decode(&tree); err != nil {
		root := doc.Content[0]
		return nil, &ParseError{Path: name, Line: root.Line, Column: root.Column, Err: err}
	}
	return normalizeYAML(tree), nil
}

// normalizeYAML turns YAML ints into int64 so both syntaxes yield the
// same value types.
func normalizeYAML(m map[string]any) map[string]any {
	for k, v := range m {
		switch x := v.(type) {
		case int:
			m[k] = int64(x)
		case map[string]any:
			m[k] = normalizeYAML(x)
		}
	}
	return m
}
