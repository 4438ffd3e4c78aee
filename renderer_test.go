package chartdraw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/chartdraw/geom"
)

// stub records draw order and answers hits inside a box.
type stub struct {
	name string
	box  geom.Box
	log  *[]string
}

func (s *stub) Draw(Surface, RenderParams) { *s.log = append(*s.log, s.name) }

func (s *stub) HitTest(pt geom.Point, _ RenderParams) *HitResult {
	if !s.box.Contains(pt) {
		return nil
	}
	r := NewHit(HitRegular, AreaLine)
	r.Tooltip = &Tooltip{Text: s.name}
	return r
}

func TestComposite_Order(t *testing.T) {
	var log []string
	a := &stub{name: "a", box: geom.BoxXYWH(0, 0, 10, 10), log: &log}
	b := &stub{name: "b", box: geom.BoxXYWH(5, 5, 10, 10), log: &log}
	c := &stub{name: "c", box: geom.BoxXYWH(100, 100, 1, 1), log: &log}

	comp := NewComposite(a, nil, b)
	comp.Insert(0, c)
	require.Equal(t, 3, comp.Len())

	p := NewRenderParams(200, 200, 1)
	comp.Draw(nil, p)
	assert.Equal(t, []string{"c", "a", "b"}, log)

	// Overlap: the last appended child wins.
	hit := comp.HitTest(geom.Pt(7, 7), p)
	require.NotNil(t, hit)
	assert.Equal(t, "b", hit.Tooltip.Text)

	hit = comp.HitTest(geom.Pt(1, 1), p)
	require.NotNil(t, hit)
	assert.Equal(t, "a", hit.Tooltip.Text)

	assert.Nil(t, comp.HitTest(geom.Pt(50, 50), p))

	comp.Clear()
	assert.Zero(t, comp.Len())
	assert.Nil(t, comp.HitTest(geom.Pt(7, 7), p))
}

func TestComposite_Nested(t *testing.T) {
	var log []string
	inner := NewComposite(&stub{name: "inner", box: geom.BoxXYWH(0, 0, 10, 10), log: &log})
	var outer Composite
	outer.Append(inner, &stub{name: "top", log: &log})
	outer.Insert(99, &stub{name: "end", log: &log})

	p := NewRenderParams(10, 10, 1)
	outer.Draw(nil, p)
	assert.Equal(t, []string{"inner", "top", "end"}, log)
	hit := outer.HitTest(geom.Pt(2, 2), p)
	require.NotNil(t, hit)
	assert.Equal(t, "inner", hit.Tooltip.Text)
	assert.Len(t, outer.Items(), 3)
}

func TestHitResult_String(t *testing.T) {
	var none *HitResult
	assert.Equal(t, "<no hit>", none.String())
	assert.Equal(t, "ChangePoint(point=1, cursor=pointer)", NewPointHit(1, CursorPointer).String())
	assert.Equal(t, "MovePointBackground(area=background, cursor=move)", NewHit(HitMovePointBackground, AreaBackground).String())
	assert.Equal(t, "Custom(area=text, cursor=pointer)", NewHit(HitCustom, AreaText).String())
	assert.Equal(t, -1, NewHit(HitMovePoint, AreaLine).PointIndex)
	assert.Equal(t, "HitKind(9)", HitKind(9).String())
	assert.Equal(t, "Area(9)", Area(9).String())
	assert.Equal(t, "nesw-resize", CursorNESWResize.String())
}
