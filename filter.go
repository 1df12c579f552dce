package paint

import (
	"image"

	"github.com/disintegration/gift"
)

// ApplyFilter runs a gift filter chain over the layer at index i,
// destructively replacing its content. The edit is recorded in history as
// a content change, exactly like a stroke.
//
// The filtered result is drawn back at the canvas origin; filters that
// change bounds (crop, resize) are clipped to the canvas.
//
// Example:
//
//	err := comp.ApplyFilter(1, gift.New(gift.GaussianBlur(3)))
func (c *Compositor) ApplyFilter(i int, g *gift.GIFT) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	l := c.layers[i]
	if l.locked {
		return ErrLayerLocked
	}

	before := l.surface.Clone()

	src := l.surface.ToImage()
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)

	out := NewPixmap(c.width, c.height)
	out.drawImage(dst)
	l.surface = out

	c.history.push(&historyRecord{
		label:  "filter",
		before: contentState{index: i, surface: before},
		after:  contentState{index: i, surface: l.surface.Clone()},
	})
	c.contentChanged(i)
	c.notifyLayers()
	return nil
}
