// Package canvas provides a fixed-size cell surface with absolute-position
// writes, rendered to a single frame string through lipgloss.
package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Pen names a fixed foreground/background/attribute combination.
type Pen int

// Pens used by the dashboard. The palette is fixed.
const (
	PenPlain Pen = iota
	PenBackground
	PenBorder
	PenBorderBold
	PenTitle
	PenValue
	PenAlert
	PenArrow
	PenSelected
	PenNear
	PenFar
	PenDate
	PenLabel
	PenMuted
	PenMarker
	PenRange
	PenNotice
	PenNoticeBold
	PenWarning
	PenWarningBold
	PenLight
	PenInput
	PenInputCursor
)

var (
	black    = lipgloss.Color("#000000")
	red      = lipgloss.Color("#FF0000")
	gold     = lipgloss.Color("#FFD700")
	yellow   = lipgloss.Color("#FFFF00")
	cyan     = lipgloss.Color("#00FFFF")
	inputBg  = lipgloss.Color("#320000")
	onBlack  = lipgloss.NewStyle().Background(black)
	penStyle = map[Pen]lipgloss.Style{
		PenPlain:       lipgloss.NewStyle(),
		PenBackground:  onBlack,
		PenBorder:      onBlack.Foreground(red),
		PenBorderBold:  onBlack.Foreground(red).Bold(true),
		PenTitle:       onBlack.Foreground(gold).Bold(true),
		PenValue:       onBlack.Foreground(gold).Bold(true),
		PenAlert:       onBlack.Foreground(cyan).Bold(true),
		PenArrow:       onBlack.Foreground(gold).Bold(true),
		PenSelected:    onBlack.Foreground(red).Bold(true),
		PenNear:        onBlack.Foreground(lipgloss.Color("#B40000")),
		PenFar:         onBlack.Foreground(lipgloss.Color("#780000")),
		PenDate:        onBlack.Foreground(yellow),
		PenLabel:       onBlack.Foreground(red),
		PenMuted:       onBlack.Foreground(lipgloss.Color("#646464")),
		PenMarker:      onBlack.Foreground(red).Bold(true),
		PenRange:       onBlack.Foreground(lipgloss.Color("#8C8C00")),
		PenNotice:      onBlack.Foreground(yellow),
		PenNoticeBold:  onBlack.Foreground(yellow).Bold(true),
		PenWarning:     onBlack.Foreground(lipgloss.Color("#FF5050")),
		PenWarningBold: onBlack.Foreground(red).Bold(true),
		PenLight:       onBlack.Foreground(lipgloss.Color("#FF5050")),
		PenInput:       lipgloss.NewStyle().Background(inputBg).Foreground(yellow),
		PenInputCursor: lipgloss.NewStyle().Background(inputBg).Foreground(yellow).Reverse(true),
	}
)

// Style returns the lipgloss style behind a pen.
func Style(p Pen) lipgloss.Style {
	if s, ok := penStyle[p]; ok {
		return s
	}
	return penStyle[PenPlain]
}

type cell struct {
	r   rune
	pen Pen
	// cont marks the trailing half of a double-width rune.
	cont bool
}

// Canvas is a width x height grid of cells. Writes outside the grid are clipped.
type Canvas struct {
	width  int
	height int
	cells  [][]cell
}

// New returns a cleared canvas.
func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{width: width, height: height, cells: make([][]cell, height)}
	for y := range c.cells {
		c.cells[y] = make([]cell, width)
	}
	c.Clear()
	return c
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in rows.
func (c *Canvas) Height() int { return c.height }

// Clear resets every cell to an unstyled blank.
func (c *Canvas) Clear() {
	c.Fill(PenPlain)
}

// Fill paints every row with a width-wide blank in the given pen.
func (c *Canvas) Fill(p Pen) {
	for y := 0; y < c.height; y++ {
		c.FillRect(0, y, c.width, 1, p)
	}
}

// FillRect paints a blank rectangle.
func (c *Canvas) FillRect(x, y, w, h int, p Pen) {
	for row := y; row < y+h; row++ {
		if row < 0 || row >= c.height {
			continue
		}
		for col := x; col < x+w; col++ {
			if col < 0 || col >= c.width {
				continue
			}
			c.cells[row][col] = cell{r: ' ', pen: p}
		}
	}
}

// Put writes s starting at (x, y) and returns the column after the last cell written.
func (c *Canvas) Put(x, y int, s string, p Pen) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.set(x, y, cell{r: r, pen: p})
		if w == 2 {
			c.set(x+1, y, cell{pen: p, cont: true})
		}
		x += w
	}
	return x
}

func (c *Canvas) set(x, y int, v cell) {
	if y < 0 || y >= c.height || x < 0 || x >= c.width {
		return
	}
	c.cells[y][x] = v
}

// Text returns up to n cells of plain text starting at (x, y).
func (c *Canvas) Text(x, y, n int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	for col := x; col < x+n && col < c.width; col++ {
		if col < 0 {
			continue
		}
		cl := c.cells[y][col]
		if cl.cont {
			continue
		}
		b.WriteRune(cl.r)
	}
	return b.String()
}

// Line returns the plain text of row y.
func (c *Canvas) Line(y int) string {
	return c.Text(0, y, c.width)
}

// PenAt returns the pen of the cell at (x, y), or PenPlain when out of bounds.
func (c *Canvas) PenAt(x, y int) Pen {
	if y < 0 || y >= c.height || x < 0 || x >= c.width {
		return PenPlain
	}
	return c.cells[y][x].pen
}

// Render converts the grid into one styled frame, one line per row.
func (c *Canvas) Render() string {
	lines := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		lines[y] = c.renderRow(y)
	}
	return strings.Join(lines, "\n")
}

func (c *Canvas) renderRow(y int) string {
	var out strings.Builder
	var run strings.Builder
	runPen := PenPlain
	flush := func() {
		if run.Len() == 0 {
			return
		}
		out.WriteString(Style(runPen).Render(run.String()))
		run.Reset()
	}
	for x := 0; x < c.width; x++ {
		cl := c.cells[y][x]
		if cl.cont {
			continue
		}
		if cl.pen != runPen {
			flush()
			runPen = cl.pen
		}
		run.WriteRune(cl.r)
	}
	flush()
	return out.String()
}
