package label

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/chartdraw"
)

// ShapingMeasurer measures with HarfBuzz shaping from go-text/typesetting,
// so kerning, ligatures and right-to-left runs are measured as drawn. It
// uses one font for all weights and is not safe for concurrent use.
type ShapingMeasurer struct {
	font   *gotext.Font
	face   *gotext.Face
	shaper shaping.HarfbuzzShaper
}

// NewShapingMeasurer parses TrueType or OpenType data. Nil data selects
// Go Regular.
func NewShapingMeasurer(data []byte) (*ShapingMeasurer, error) {
	if data == nil {
		data = goregular.TTF
	}
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("label: parse font: %w", err)
	}
	return &ShapingMeasurer{font: face.Font, face: face}, nil
}

// Advance implements Measurer.
func (m *ShapingMeasurer) Advance(text string, f chartdraw.Font) float64 {
	if text == "" || f.Size <= 0 {
		return 0
	}
	runes := []rune(text)
	dir := di.DirectionLTR
	if Direction(text) == bidi.RightToLeft {
		dir = di.DirectionRTL
	}
	out := m.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      m.face,
		Size:      fixed.Int26_6(f.Size * 64),
		Script:    scriptOf(runes),
		Language:  language.NewLanguage("en"),
	})
	return fixedToFloat(out.Advance)
}

// Metrics implements Measurer.
func (m *ShapingMeasurer) Metrics(f chartdraw.Font) Metrics {
	ext, ok := m.face.FontHExtents()
	upem := float64(m.font.Upem())
	if !ok || upem == 0 {
		return Estimate{}.Metrics(f)
	}
	scale := f.Size / upem
	return Metrics{
		Ascent:  float64(ext.Ascender) * scale,
		Descent: -float64(ext.Descender) * scale,
		LineGap: float64(ext.LineGap) * scale,
	}
}

func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
