package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/bloodroll/internal/canvas"
	"github.com/verte-zerg/bloodroll/internal/layout"
	"github.com/verte-zerg/bloodroll/internal/modal"
	"github.com/verte-zerg/bloodroll/internal/model"
)

const (
	pickerSelected = "→ "
	pickerIdle     = "  "
	notesPreview   = 30
)

// ModalBox draws a bordered dialog with a centered title and a divider.
func ModalBox(c *canvas.Canvas, r layout.Rect, title string) {
	drawFrame(c, r.X, r.Y, r.W, r.H, canvas.PenBorderBold)
	inner := r.W - 2
	text := runewidth.Truncate(" "+title+" ", inner, "")
	c.Put(r.X+1+layout.Centered(inner, runewidth.StringWidth(text)), r.Y+1, text, canvas.PenTitle)
	c.Put(r.X, r.Y+2, "╟"+strings.Repeat("─", inner)+"╢", canvas.PenBorderBold)
}

// Form draws a multi-field dialog. Accepted fields keep showing their value;
// fields after the active one are not drawn yet.
func Form(c *canvas.Canvas, l layout.Layout, f modal.Form, width, height int) {
	r := l.Modal(width, height)
	ModalBox(c, r, f.Title())
	values := f.Values()
	for i, field := range f.Fields() {
		if i > f.Index() {
			break
		}
		labelY, inputY := r.FieldRows(i)
		c.Put(r.X+2, labelY, field.Label, canvas.PenLabel)
		if i < len(values) {
			input(c, r.X+2, inputY, field.MaxLen, values[i], -1)
			continue
		}
		if f.State() == modal.StateActive {
			e := f.Editor()
			input(c, r.X+2, inputY, e.MaxLen(), e.Value(), e.Cursor())
		}
	}
}

// input draws an input field background, its text, and the cursor cell.
// A negative cursor hides it.
func input(c *canvas.Canvas, x, y, width int, text string, cursor int) {
	c.FillRect(x, y, width, 1, canvas.PenInput)
	c.Put(x, y, text, canvas.PenInput)
	if cursor < 0 {
		return
	}
	runes := []rune(text)
	under := " "
	if cursor < len(runes) {
		under = string(runes[cursor])
	}
	c.Put(x+runewidth.StringWidth(string(runes[:cursor])), y, under, canvas.PenInputCursor)
}

// PickerHeight returns the dialog height for n rows.
func PickerHeight(n int) int {
	h := n + 5
	if h > layout.PickerMaxHeight {
		return layout.PickerMaxHeight
	}
	return h
}

// Picker draws a list dialog with the selected row highlighted.
func Picker(c *canvas.Canvas, l layout.Layout, title string, rows []string, selected int, verb string) {
	r := l.Modal(layout.PickerWidth, PickerHeight(len(rows)))
	ModalBox(c, r, title)
	lineWidth := r.W - 4
	for i, row := range rows {
		y := r.Y + 3 + i
		if y >= r.Y+r.H-2 {
			break
		}
		prefix, pen := pickerIdle, canvas.PenLabel
		if i == selected {
			prefix, pen = pickerSelected, canvas.PenNoticeBold
		}
		text := runewidth.FillRight(runewidth.Truncate(prefix+row, lineWidth, ""), lineWidth)
		c.Put(r.X+2, y, text, pen)
	}
	help := fmt.Sprintf("↑/↓: select  Enter: %s  Esc: cancel", verb)
	c.Put(r.X+2, r.Y+r.H-2, help, canvas.PenNotice)
}

// EntryRow formats an entry for a picker row.
func EntryRow(e model.Entry, unit string) string {
	row := fmt.Sprintf("%s  %.2f %s", e.DateString(), e.Value, unit)
	if e.Notes != "" {
		row += fmt.Sprintf("  (%s)", runewidth.Truncate(e.Notes, notesPreview, ""))
	}
	return row
}

// Message overlays a small centered notice box.
func Message(c *canvas.Canvas, l layout.Layout, text string) {
	w := runewidth.StringWidth(text) + 4
	r := layout.Rect{X: layout.Centered(l.Width, w), Y: l.CenterY - 1, W: w, H: 3}
	drawFrame(c, r.X, r.Y, r.W, r.H, canvas.PenBorderBold)
	c.Put(r.X+2, r.Y+1, text, canvas.PenNoticeBold)
}

func centerText(c *canvas.Canvas, width, y int, text string, pen canvas.Pen) {
	c.Put(layout.Centered(width, runewidth.StringWidth(text)), y, text, pen)
}
