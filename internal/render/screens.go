package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/bloodroll/internal/canvas"
	"github.com/verte-zerg/bloodroll/internal/layout"
)

type screenLine struct {
	text string
	pen  canvas.Pen
}

func banner(title string, inner int) []screenLine {
	head := "║" + runewidth.FillRight("   "+title, inner) + "║"
	return []screenLine{
		{"╔" + strings.Repeat("═", inner) + "╗", canvas.PenBorderBold},
		{head, canvas.PenBorderBold},
		{"╚" + strings.Repeat("═", inner) + "╝", canvas.PenBorderBold},
	}
}

func drawLines(c *canvas.Canvas, startY int, lines []screenLine) {
	if startY < 0 {
		startY = 0
	}
	for i, line := range lines {
		centerText(c, c.Width(), startY+i, line.text, line.pen)
	}
}

// Calibration draws the startup size gate for a terminal of the canvas size.
func Calibration(c *canvas.Canvas) {
	c.Clear()
	c.Fill(canvas.PenBackground)
	w, h := c.Width(), c.Height()
	if layout.Fits(w, h) {
		x, y := w/2-15, h/2
		c.Put(x, y, "TERMINAL SIZE OK", canvas.PenNoticeBold)
		c.Put(x, y+1, "Press any key to continue...", canvas.PenLabel)
		return
	}
	lines := banner("TERMINAL CALIBRATION REQUIRED", 40)
	lines = append(lines,
		screenLine{"", canvas.PenLabel},
		screenLine{fmt.Sprintf("Current size: %dx%d", w, h), canvas.PenNotice},
		screenLine{fmt.Sprintf("Required:     %dx%d", layout.MinWidth, layout.MinHeight), canvas.PenNotice},
		screenLine{"", canvas.PenLabel},
		screenLine{"Please resize your terminal window", canvas.PenLabel},
		screenLine{"Press q to quit", canvas.PenMuted},
	)
	drawLines(c, (h-len(lines))/2, lines)
}

// Welcome draws the first-run screen shown when no components exist.
func Welcome(c *canvas.Canvas) {
	c.Clear()
	c.Fill(canvas.PenBackground)
	lines := banner("       WELCOME TO BLOOD PANEL ROLODEX", 60)
	lines[1].pen = canvas.PenTitle
	lines = append(lines,
		screenLine{"", canvas.PenLight},
		screenLine{"  No components found. Let's create your first one!", canvas.PenLight},
		screenLine{"", canvas.PenLight},
		screenLine{"  Examples: HbA1c, Creatinine, LDL Cholesterol, Glucose", canvas.PenLight},
		screenLine{"", canvas.PenLight},
		screenLine{"  Press any key to continue...", canvas.PenLight},
	)
	drawLines(c, c.Height()/2-len(lines)/2, lines)
}
