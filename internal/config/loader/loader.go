// Package loader reads style sheets and environment overrides into flat
// maps keyed by style name.
//
// Sheets are TOML or YAML. Keys may be flat ("fretStringSpacing") or
// grouped in tables ("[fret] stringSpacing"); both read as the flat name.
// A sheet may pull in others with "@include", which it then overrides.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrIncludeDepth reports @include directives nested too deeply.
var ErrIncludeDepth = errors.New("include depth exceeded")

// FileSystem is what sheets are read from. fstest.MapFS satisfies it.
type FileSystem interface {
	fs.FS
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS reads from the operating system.
type OSFS struct{}

func (OSFS) Open(name string) (fs.File, error)     { return os.Open(name) }
func (OSFS) ReadFile(path string) ([]byte, error)  { return os.ReadFile(path) }
func (OSFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

func DefaultFS() FileSystem { return OSFS{} }

// Format is a style sheet syntax.
type Format int

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

// FormatOf picks the syntax from the file extension: YAML for .yaml and
// .yml, TOML otherwise.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return TOML
}

// Decode parses a sheet without resolving includes or flattening.
func Decode(format Format, name string, data []byte) (map[string]any, error) {
	if format == YAML {
		return decodeYAML(name, data)
	}
	return decodeTOML(name, data)
}

// ReadSheet reads the sheet at path with its includes, up to depth levels
// deep, and returns its flat style values. A missing file is an error.
func ReadSheet(fsys FileSystem, path string, depth int) (map[string]any, error) {
	tree, err := readTree(fsys, path, depth)
	if err != nil {
		return nil, err
	}
	return Flatten(tree), nil
}

func readTree(fsys FileSystem, path string, depth int) (map[string]any, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncludeDepth, path)
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style sheet %s: %w", path, err)
	}
	tree, err := Decode(FormatOf(path), path, data)
	if err != nil {
		return nil, err
	}

	includes, err := includeList(tree["@include"])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	delete(tree, "@include")

	// Included sheets are overridden by the sheet naming them, and each by
	// the includes listed after it.
	base := map[string]any{}
	for _, inc := range includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(filepath.Dir(path), inc)
		}
		sub, err := readTree(fsys, inc, depth-1)
		if err != nil {
			return nil, fmt.Errorf("include from %s: %w", path, err)
		}
		base = overlay(base, sub)
	}
	return overlay(base, tree), nil
}

func includeList(v any) ([]string, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("@include entries must be strings, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("@include must be a string or a list, got %T", v)
}

// ParseError locates a syntax error in a sheet. Line and Column are zero
// when the decoder does not report them.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
