package chartdraw

import "github.com/gogpu/chartdraw/geom"

// Renderer draws one piece of drawing-tool geometry and answers hit
// queries about it. A renderer's output depends only on its last data
// snapshot and the call arguments.
type Renderer interface {
	Draw(s Surface, p RenderParams)
	// HitTest returns nil when pt does not touch the shape.
	HitTest(pt geom.Point, p RenderParams) *HitResult
}

// Composite is an ordered container of renderers. Append order is z-order:
// children are drawn first to last, so the last appended is on top.
// Hit testing searches from the last appended to the first, so the topmost
// child wins. Composites nest.
//
// The zero value is an empty composite ready to use.
type Composite struct {
	items []Renderer
}

// NewComposite returns a composite holding the given renderers in order.
func NewComposite(items ...Renderer) *Composite {
	c := &Composite{}
	c.Append(items...)
	return c
}

// Append adds renderers on top of the existing ones. Nil renderers are
// skipped.
func (c *Composite) Append(items ...Renderer) {
	for _, r := range items {
		if r != nil {
			c.items = append(c.items, r)
		}
	}
}

// Insert places r at index i, shifting later children up. An out of range
// index appends.
func (c *Composite) Insert(i int, r Renderer) {
	if r == nil {
		return
	}
	if i < 0 || i >= len(c.items) {
		c.items = append(c.items, r)
		return
	}
	c.items = append(c.items, nil)
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = r
}

// Clear removes all children.
func (c *Composite) Clear() {
	c.items = c.items[:0]
}

// Len returns the number of children.
func (c *Composite) Len() int {
	return len(c.items)
}

// Items returns the children in append order. The slice must not be
// modified.
func (c *Composite) Items() []Renderer {
	return c.items
}

// Draw implements Renderer.
func (c *Composite) Draw(s Surface, p RenderParams) {
	for _, r := range c.items {
		r.Draw(s, p)
	}
}

// HitTest implements Renderer.
func (c *Composite) HitTest(pt geom.Point, p RenderParams) *HitResult {
	for i := len(c.items) - 1; i >= 0; i-- {
		if res := c.items[i].HitTest(pt, p); res != nil {
			return res
		}
	}
	return nil
}
