// Package xmlio provides the tag based XML reader and writer used by the
// score file format. The writer produces one element per line with two
// space indentation; the reader walks start elements one nesting level at a
// time and logs and skips tags its caller does not know.
package xmlio

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Header is the XML declaration written by WriteHeader.
const Header = `<?xml version="1.0" encoding="UTF-8"?>`

// Attr is a single attribute of a written element.
type Attr struct {
	Name  string
	Value any
}

// A is shorthand for Attr{name, value}.
func A(name string, value any) Attr {
	return Attr{Name: name, Value: value}
}

// Writer writes indented XML. Errors are sticky; check Flush.
type Writer struct {
	w     *bufio.Writer
	stack []string
	err   error
}

// NewWriter creates a writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteHeader writes the XML declaration.
func (w *Writer) WriteHeader() {
	w.writeLine(Header)
}

// StartElement opens an element and increases indentation.
func (w *Writer) StartElement(name string, attrs ...Attr) {
	w.writeLine("<" + name + formatAttrs(attrs) + ">")
	w.stack = append(w.stack, name)
}

// EndElement closes the most recently opened element.
func (w *Writer) EndElement() {
	if len(w.stack) == 0 {
		w.setErr(fmt.Errorf("%w: end element without start", ErrUnbalanced))
		return
	}
	name := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	w.writeLine("</" + name + ">")
}

// Tag writes <name attrs>value</name>.
func (w *Writer) Tag(name string, value any, attrs ...Attr) {
	w.writeLine("<" + name + formatAttrs(attrs) + ">" + escape(FormatValue(value)) + "</" + name + ">")
}

// EmptyTag writes <name attrs/>.
func (w *Writer) EmptyTag(name string, attrs ...Attr) {
	w.writeLine("<" + name + formatAttrs(attrs) + "/>")
}

// Depth returns the number of open elements.
func (w *Writer) Depth() int {
	return len(w.stack)
}

// Flush writes buffered output and reports the first error seen.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if len(w.stack) != 0 {
		return fmt.Errorf("%w: %d unclosed elements (%s)", ErrUnbalanced, len(w.stack), strings.Join(w.stack, "/"))
	}
	return w.w.Flush()
}

func (w *Writer) writeLine(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.w.WriteString(strings.Repeat("  ", len(w.stack))); err != nil {
		w.setErr(err)
		return
	}
	if _, err := w.w.WriteString(s); err != nil {
		w.setErr(err)
		return
	}
	if err := w.w.WriteByte('\n'); err != nil {
		w.setErr(err)
	}
}

func (w *Writer) setErr(err error) {
	if w.err == nil {
		w.err = err
	}
}

// FormatValue renders a tag or attribute value the way the file format
// expects: booleans as 1/0, floats in shortest form.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case rune:
		return strconv.Itoa(int(x))
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

func formatAttrs(attrs []Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(escape(FormatValue(a.Value)))
		b.WriteByte('"')
	}
	return b.String()
}

func escape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
