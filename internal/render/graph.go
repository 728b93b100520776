package render

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/bloodroll/internal/canvas"
	"github.com/verte-zerg/bloodroll/internal/layout"
	"github.com/verte-zerg/bloodroll/internal/model"
	"github.com/verte-zerg/bloodroll/internal/stats"
)

const (
	marker       = "●"
	rangeDot     = "·"
	needMore     = "Need 2+"
	needMoreTail = "entries"
	graphError   = "Graph error: "
)

// Graph draws the trend panel with its origin at (x, y).
//
// Fewer than two entries draw the need-more-data text inside the frame.
// Any other mapping failure is reported inline and leaves the rest of the
// frame untouched.
func Graph(c *canvas.Canvas, x, y int, comp model.Component, entries []model.Entry) {
	drawFrame(c, x, y, layout.GraphWidth, layout.GraphHeight, canvas.PenBorder)
	ox, oy := x+layout.PlotInsetX, y+layout.PlotInsetY

	trend, err := stats.MapTrend(entries, layout.PlotWidth, layout.PlotHeight)
	if errors.Is(err, stats.ErrNotEnoughData) {
		c.Put(x+10, y+layout.GraphHeight/2-1, needMore, canvas.PenNotice)
		return
	}
	if err != nil {
		msg := runewidth.Truncate(graphError+err.Error(), layout.PlotWidth, "")
		c.Put(ox, oy+layout.PlotHeight/2, msg, canvas.PenWarning)
		return
	}

	for _, bound := range []*float64{comp.NormalMin, comp.NormalMax} {
		if bound == nil {
			continue
		}
		row, ok := trend.RangeRow(*bound)
		if !ok {
			continue
		}
		for col := 0; col < layout.PlotWidth; col += 2 {
			c.Put(ox+col, oy+row, rangeDot, canvas.PenRange)
		}
	}
	for _, p := range trend.Points {
		c.Put(ox+p.X, oy+p.Y, marker, canvas.PenMarker)
	}
	c.Put(ox, oy, fmt.Sprintf("%.1f", trend.Max), canvas.PenDate)
	c.Put(ox, oy+layout.PlotHeight-1, fmt.Sprintf("%.1f", trend.Min), canvas.PenDate)
}

// NeedMoreData draws the placeholder used in place of the graph panel.
func NeedMoreData(c *canvas.Canvas, l layout.Layout) {
	c.Put(layout.GraphX+5, l.CenterY, needMore, canvas.PenNotice)
	c.Put(layout.GraphX+5, l.CenterY+1, needMoreTail, canvas.PenNotice)
}
