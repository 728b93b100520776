// Package render draws dashboard panels onto a canvas at absolute positions.
package render

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/bloodroll/internal/canvas"
	"github.com/verte-zerg/bloodroll/internal/layout"
	"github.com/verte-zerg/bloodroll/internal/model"
)

const (
	// Placeholder marks an empty value slot.
	Placeholder = "---"
	// valueLimit caps the formatted value before centering.
	valueLimit = 8
)

// drawFrame draws a double-line border of w x h and blanks its interior.
func drawFrame(c *canvas.Canvas, x, y, w, h int, pen canvas.Pen) {
	if w < 2 || h < 2 {
		return
	}
	inner := w - 2
	c.Put(x, y, "╔"+strings.Repeat("═", inner)+"╗", pen)
	for row := 1; row < h-1; row++ {
		c.Put(x, y+row, "║", pen)
		c.FillRect(x+1, y+row, inner, 1, canvas.PenBackground)
		c.Put(x+w-1, y+row, "║", pen)
	}
	c.Put(x, y+h-1, "╚"+strings.Repeat("═", inner)+"╝", pen)
}

// BoxValue formats a value for a value box: one decimal, at most 8 characters.
func BoxValue(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	if len(s) > valueLimit {
		s = s[:valueLimit]
	}
	return s
}

// ValueBox draws one 11x5 value box with its origin at (x, y). A nil entry
// draws the placeholder and no date.
func ValueBox(c *canvas.Canvas, x, y int, e *model.Entry, comp model.Component) {
	drawFrame(c, x, y, layout.BoxWidth, layout.BoxHeight, canvas.PenBorder)
	inner := layout.BoxWidth - 2
	mid := y + layout.BoxHeight/2
	if e == nil {
		c.Put(x+1+(inner-len(Placeholder))/2, mid, Placeholder, canvas.PenMuted)
		return
	}
	c.Put(x, y-1, e.DateString(), canvas.PenDate)
	text := BoxValue(e.Value)
	pen := canvas.PenValue
	if comp.OutOfRange(e.Value) {
		pen = canvas.PenAlert
	}
	c.Put(x+1+(inner-len(text))/2, mid, text, pen)
}
