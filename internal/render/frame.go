package render

import (
	"github.com/verte-zerg/bloodroll/internal/canvas"
	"github.com/verte-zerg/bloodroll/internal/layout"
	"github.com/verte-zerg/bloodroll/internal/model"
	"github.com/verte-zerg/bloodroll/internal/rolodex"
	"github.com/verte-zerg/bloodroll/internal/stats"
)

const (
	arrow      = "──>"
	emptyState = "No components found. Press 'c' to create one."
)

// Dashboard is everything one frame needs.
type Dashboard struct {
	Selector rolodex.Selector
	// Entries is the selected component's history, most recent first.
	Entries []model.Entry
	Legend  string
}

// Frame repaints the whole canvas with the dashboard.
func Frame(c *canvas.Canvas, d Dashboard) {
	c.Clear()
	c.Fill(canvas.PenBackground)
	l := layout.Compute(c.Width(), c.Height())

	comp, ok := d.Selector.Current()
	if !ok {
		EmptyState(c, l)
		return
	}

	Selector(c, l, d.Selector)

	slots := stats.LatestSlots(d.Entries, layout.BoxCount)
	for i, x := range layout.BoxColumns {
		ValueBox(c, x, l.BoxY, slots[i], comp)
	}

	if len(d.Entries) >= 2 {
		Graph(c, layout.GraphX, l.GraphY, comp, d.Entries)
	} else {
		NeedMoreData(c, l)
	}

	Legend(c, l, d.Legend)
}

// Selector draws the five-slot rolodex column.
func Selector(c *canvas.Canvas, l layout.Layout, sel rolodex.Selector) {
	for _, slot := range sel.Window() {
		y := l.SlotY(slot.Offset)
		if slot.Offset == 0 {
			c.Put(layout.ArrowX, y, arrow, canvas.PenArrow)
		}
		c.Put(layout.SlotNameX(slot.Offset), y, rolodex.Label(slot.Component, slot.Offset), weightPen(rolodex.WeightFor(slot.Offset)))
	}
}

func weightPen(w rolodex.Weight) canvas.Pen {
	switch w {
	case rolodex.WeightSelected:
		return canvas.PenSelected
	case rolodex.WeightNear:
		return canvas.PenNear
	default:
		return canvas.PenFar
	}
}

// Legend draws the centered key legend.
func Legend(c *canvas.Canvas, l layout.Layout, text string) {
	centerText(c, l.Width, l.LegendY, text, canvas.PenLabel)
}

// EmptyState draws the no-components message.
func EmptyState(c *canvas.Canvas, l layout.Layout) {
	centerText(c, l.Width, l.CenterY, emptyState, canvas.PenNotice)
}
