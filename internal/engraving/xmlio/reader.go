package xmlio

import (
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

var logger = slog.Default()

// SetLogger replaces the package logger. Passing nil restores slog.Default().
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger = l
}

// Reader walks an XML document element by element.
//
// The usage pattern mirrors a pull parser:
//
//	for r.ReadNextStartElement() {
//	    switch r.Name() {
//	    case "dot":
//	        fret := r.ReadInt()
//	    default:
//	        r.Unknown()
//	    }
//	}
//
// ReadNextStartElement returns false when the enclosing element ends, so
// nested loops consume exactly one element each. Every element returned by
// ReadNextStartElement must be consumed by a nested loop, a Read* call,
// SkipCurrentElement or Unknown.
type Reader struct {
	dec    *xml.Decoder
	cur    xml.StartElement
	source string
	err    error

	unknowns []string
}

// NewReader creates a reader on r. source names the document in log output.
func NewReader(r io.Reader, source string) *Reader {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	return &Reader{dec: dec, source: source}
}

// ReadNextStartElement advances to the next start element at the current
// nesting level. It returns false at the end of the enclosing element, at
// end of input or on error.
func (r *Reader) ReadNextStartElement() bool {
	if r.err != nil {
		return false
	}
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.err = err
			}
			return false
		}
		switch t := tok.(type) {
		case xml.StartElement:
			r.cur = t.Copy()
			return true
		case xml.EndElement:
			return false
		}
	}
}

// Name returns the local name of the current element.
func (r *Reader) Name() string {
	return r.cur.Name.Local
}

// Attribute returns the value of attribute name of the current element.
func (r *Reader) Attribute(name string) (string, bool) {
	for _, a := range r.cur.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttribute reports whether the current element has attribute name.
func (r *Reader) HasAttribute(name string) bool {
	_, ok := r.Attribute(name)
	return ok
}

// IntAttribute returns attribute name as an integer, or def when the
// attribute is absent or malformed.
func (r *Reader) IntAttribute(name string, def int) int {
	v, ok := r.Attribute(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// ReadText reads the character content of the current element and consumes
// its end tag. Nested elements are skipped.
func (r *Reader) ReadText() string {
	if r.err != nil {
		return ""
	}
	var b strings.Builder
	depth := 0
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			r.err = err
			return b.String()
		}
		switch t := tok.(type) {
		case xml.CharData:
			if depth == 0 {
				b.Write(t)
			}
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return b.String()
			}
			depth--
		}
	}
}

// ReadInt reads the content of the current element as an integer; malformed
// content yields 0.
func (r *Reader) ReadInt() int {
	n, err := strconv.Atoi(strings.TrimSpace(r.ReadText()))
	if err != nil {
		return 0
	}
	return n
}

// ReadDouble reads the content of the current element as a float.
func (r *Reader) ReadDouble() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(r.ReadText()), 64)
	if err != nil {
		return 0
	}
	return f
}

// ReadBool reads the content of the current element as a boolean. Empty
// content counts as true, matching how flag elements are written.
func (r *Reader) ReadBool() bool {
	s := strings.TrimSpace(r.ReadText())
	switch strings.ToLower(s) {
	case "", "1", "true", "yes":
		return true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n != 0
	}
	return false
}

// SkipCurrentElement consumes the current element and all its children.
func (r *Reader) SkipCurrentElement() {
	if r.err != nil {
		return
	}
	if err := r.dec.Skip(); err != nil {
		r.err = err
	}
}

// Unknown logs the current element as unknown and skips it.
func (r *Reader) Unknown() {
	line, _ := r.dec.InputPos()
	logger.Warn("xml: unknown element", "source", r.source, "tag", r.Name(), "line", line)
	r.unknowns = append(r.unknowns, r.Name())
	r.SkipCurrentElement()
}

// Unknowns returns the names of elements skipped through Unknown.
func (r *Reader) Unknowns() []string {
	return r.unknowns
}

// Err returns the first syntax or IO error encountered.
func (r *Reader) Err() error {
	return r.err
}
