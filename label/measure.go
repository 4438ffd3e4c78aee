package label

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/cache"
)

// Sentinel errors for the label package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("label: empty font data")
)

// Metrics are the vertical metrics of a font at a size, in the same unit
// as the size.
type Metrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// LineHeight returns the distance between consecutive baselines.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// Measurer measures text for layout. Results are in the unit of
// chartdraw.Font.Size, normally CSS pixels.
type Measurer interface {
	Advance(text string, f chartdraw.Font) float64
	Metrics(f chartdraw.Font) Metrics
}

// Estimate is a font-free Measurer: every rune advances 0.6 em and the
// line is 1.2 em. It is deterministic and used when no fonts are wanted.
type Estimate struct{}

// Advance implements Measurer.
func (Estimate) Advance(text string, f chartdraw.Font) float64 {
	return float64(utf8.RuneCountInString(text)) * f.Size * 0.6
}

// Metrics implements Measurer.
func (Estimate) Metrics(f chartdraw.Font) Metrics {
	return Metrics{Ascent: f.Size * 0.8, Descent: f.Size * 0.2, LineGap: f.Size * 0.2}
}

// defaultFaceCapacity bounds the number of sized faces kept open.
const defaultFaceCapacity = 32

type faceKey struct {
	size float64
	bold bool
}

// OpenTypeMeasurer measures with golang.org/x/image/font/opentype faces.
// Faces are created per (size, weight) and kept in an LRU cache. It is not
// safe for concurrent use.
type OpenTypeMeasurer struct {
	regular *opentype.Font
	bold    *opentype.Font
	faces   *cache.LRU[faceKey, font.Face]
}

type otOptions struct {
	regular  []byte
	bold     []byte
	capacity int
}

// OpenTypeOption configures an OpenTypeMeasurer.
type OpenTypeOption func(*otOptions)

// WithFontData replaces the Go fonts with TrueType or OpenType data. Bold
// may be nil, in which case regular data is used for bold text too.
func WithFontData(regular, bold []byte) OpenTypeOption {
	return func(o *otOptions) {
		o.regular = regular
		o.bold = bold
	}
}

// WithFaceCapacity sets how many sized faces are cached.
func WithFaceCapacity(n int) OpenTypeOption {
	return func(o *otOptions) {
		o.capacity = n
	}
}

// NewOpenTypeMeasurer parses the fonts and returns a measurer. Without
// options it uses Go Regular and Go Bold.
func NewOpenTypeMeasurer(opts ...OpenTypeOption) (*OpenTypeMeasurer, error) {
	o := otOptions{regular: goregular.TTF, bold: gobold.TTF, capacity: defaultFaceCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.regular) == 0 {
		return nil, ErrEmptyFontData
	}
	regular, err := opentype.Parse(o.regular)
	if err != nil {
		return nil, fmt.Errorf("label: parse regular font: %w", err)
	}
	bold := regular
	if len(o.bold) > 0 {
		if bold, err = opentype.Parse(o.bold); err != nil {
			return nil, fmt.Errorf("label: parse bold font: %w", err)
		}
	}
	m := &OpenTypeMeasurer{regular: regular, bold: bold}
	m.faces = cache.New(o.capacity, func(_ faceKey, f font.Face) {
		_ = f.Close()
	})
	return m, nil
}

func (m *OpenTypeMeasurer) face(f chartdraw.Font) font.Face {
	key := faceKey{size: f.Size, bold: f.Bold}
	if face, ok := m.faces.Get(key); ok {
		return face
	}
	src := m.regular
	if f.Bold {
		src = m.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		// Sizes are validated by callers; NewFace only fails on bad sizes.
		chartdraw.Logger().Warn("label: opentype face", "size", f.Size, "err", err)
		return nil
	}
	m.faces.Set(key, face)
	return face
}

// Advance implements Measurer.
func (m *OpenTypeMeasurer) Advance(text string, f chartdraw.Font) float64 {
	if text == "" || f.Size <= 0 {
		return 0
	}
	face := m.face(f)
	if face == nil {
		return Estimate{}.Advance(text, f)
	}
	return fixedToFloat(font.MeasureString(face, text))
}

// Metrics implements Measurer.
func (m *OpenTypeMeasurer) Metrics(f chartdraw.Font) Metrics {
	if f.Size <= 0 {
		return Metrics{}
	}
	face := m.face(f)
	if face == nil {
		return Estimate{}.Metrics(f)
	}
	fm := face.Metrics()
	asc, desc := fixedToFloat(fm.Ascent), fixedToFloat(fm.Descent)
	return Metrics{
		Ascent:  asc,
		Descent: desc,
		LineGap: math.Max(0, fixedToFloat(fm.Height)-asc-desc),
	}
}

// Faces returns the number of cached faces.
func (m *OpenTypeMeasurer) Faces() int {
	return m.faces.Len()
}

// Close releases all cached faces.
func (m *OpenTypeMeasurer) Close() {
	m.faces.Clear()
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
