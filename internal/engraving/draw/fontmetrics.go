package draw

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/engrave/internal/engraving/style"
)

// FontMetrics measures text set in a Font. All faces are Go Regular; the
// requested family only selects the role, not the outlines.
type FontMetrics struct {
	face font.Face
	size float64
}

var (
	parseOnce  sync.Once
	parsedFont *opentype.Font
	parseErr   error

	// faceMu guards the cache and every use of a cached face; faces are
	// not safe for concurrent use.
	faceMu    sync.Mutex
	faceCache = map[float64]font.Face{}
)

func regularFont() (*opentype.Font, error) {
	parseOnce.Do(func() {
		parsedFont, parseErr = opentype.Parse(goregular.TTF)
	})
	return parsedFont, parseErr
}

// Face returns a cached face for the given point size at engraving DPI.
func Face(pointSize float64) (font.Face, error) {
	if pointSize <= 0 || math.IsNaN(pointSize) {
		pointSize = 1
	}
	faceMu.Lock()
	defer faceMu.Unlock()

	if f, ok := faceCache[pointSize]; ok {
		return f, nil
	}
	fnt, err := regularFont()
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    pointSize,
		DPI:     style.DPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face %.2fpt: %w", pointSize, err)
	}
	faceCache[pointSize] = face
	return face, nil
}

// NewFontMetrics returns metrics for f. If the face cannot be built the
// metrics fall back to an estimate from the point size.
func NewFontMetrics(f Font) *FontMetrics {
	face, err := Face(f.PointSize)
	if err != nil {
		return &FontMetrics{size: f.PointSize}
	}
	return &FontMetrics{face: face, size: f.PointSize}
}

// Width returns the advance width of s in pixels.
func (m *FontMetrics) Width(s string) float64 {
	if m.face == nil {
		return float64(len(s)) * 0.6 * m.fallbackSize()
	}
	faceMu.Lock()
	defer faceMu.Unlock()
	return fixedToFloat(font.MeasureString(m.face, s))
}

// Ascent returns the distance from the baseline to the top of the face.
func (m *FontMetrics) Ascent() float64 {
	if m.face == nil {
		return 0.8 * m.fallbackSize()
	}
	faceMu.Lock()
	defer faceMu.Unlock()
	return fixedToFloat(m.face.Metrics().Ascent)
}

// Height returns the line height of the face.
func (m *FontMetrics) Height() float64 {
	if m.face == nil {
		return m.fallbackSize()
	}
	faceMu.Lock()
	defer faceMu.Unlock()
	return fixedToFloat(m.face.Metrics().Height)
}

func (m *FontMetrics) fallbackSize() float64 {
	return style.DPI / 72.0 * m.size
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
