package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

func decodeTOML(name string, data []byte) (map[string]any, error) {
	tree := map[string]any{}
	if err := toml.Unmarshal(data, &tree); err != nil {
		pe := &ParseError{Path: name, Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	return tree, nil
}
