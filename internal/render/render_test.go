package render

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/bloodroll/internal/canvas"
	"github.com/verte-zerg/bloodroll/internal/layout"
	"github.com/verte-zerg/bloodroll/internal/modal"
	"github.com/verte-zerg/bloodroll/internal/model"
	"github.com/verte-zerg/bloodroll/internal/rolodex"
)

func mustEntry(t *testing.T, id int64, date string, value float64) model.Entry {
	t.Helper()
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return model.Entry{ID: id, ComponentID: 1, Value: value, Date: d}
}

func glucose() model.Component {
	return model.Component{ID: 1, Name: "Glucose", Unit: "mg/dL"}
}

// scenarioEntries returns the history most recent first, as the store does.
func scenarioEntries(t *testing.T) []model.Entry {
	return []model.Entry{
		mustEntry(t, 3, "2023-01-10", 95),
		mustEntry(t, 2, "2023-01-05", 110),
		mustEntry(t, 1, "2023-01-01", 90),
	}
}

func countRune(c *canvas.Canvas, r rune, x0, y0, x1, y1 int) int {
	n := 0
	for y := y0; y < y1; y++ {
		n += strings.Count(c.Text(x0, y, x1-x0), string(r))
	}
	return n
}

func TestFrameScenario(t *testing.T) {
	c := canvas.New(120, 40)
	comp := glucose()
	Frame(c, Dashboard{
		Selector: rolodex.New([]model.Component{comp}),
		Entries:  scenarioEntries(t),
		Legend:   "q: quit",
	})
	l := layout.Compute(120, 40)

	wantDates := []string{"2023-01-01", "2023-01-05", "2023-01-10"}
	wantValues := []string{"90.0", "110.0", "95.0"}
	for i, x := range layout.BoxColumns {
		if got := c.Text(x, l.BoxY-1, 10); got != wantDates[i] {
			t.Fatalf("box %d date %q, want %q", i, got, wantDates[i])
		}
		inner := strings.TrimSpace(c.Text(x+1, l.BoxY+2, layout.BoxWidth-2))
		if inner != wantValues[i] {
			t.Fatalf("box %d value %q, want %q", i, inner, wantValues[i])
		}
	}
	if got := c.Text(layout.BoxColumns[1]+3, l.BoxY+2, 5); got != "110.0" {
		t.Fatalf("expected 110.0 centered at column offset 3, got %q", got)
	}

	ox, oy := l.PlotOrigin()
	if n := countRune(c, '●', ox, oy, ox+layout.PlotWidth, oy+layout.PlotHeight); n != 3 {
		t.Fatalf("expected 3 markers, got %d", n)
	}
	if got := c.Text(ox, oy, 5); got != "112.0" {
		t.Fatalf("expected max label 112.0, got %q", got)
	}
	if got := c.Text(ox, oy+layout.PlotHeight-1, 4); got != "88.0" {
		t.Fatalf("expected min label 88.0, got %q", got)
	}

	if got := c.Text(layout.ArrowX, l.CenterY, 3); got != "──>" {
		t.Fatalf("expected arrow, got %q", got)
	}
	if got := c.Text(layout.NameX, l.CenterY, 15); got != "Glucose (mg/dL)" {
		t.Fatalf("expected selected label, got %q", got)
	}
	for _, offset := range []int{-2, -1, 1, 2} {
		if got := c.Text(layout.SlotNameX(offset), l.SlotY(offset), 7); got != "Glucose" {
			t.Fatalf("offset %d: expected repeated component, got %q", offset, got)
		}
	}
	if !strings.Contains(c.Line(l.LegendY), "q: quit") {
		t.Fatalf("expected legend on row %d", l.LegendY)
	}
	if c.PenAt(0, 0) != canvas.PenBackground || c.PenAt(119, 39) != canvas.PenBackground {
		t.Fatalf("expected full background fill")
	}
}

func TestFrameEmptyState(t *testing.T) {
	c := canvas.New(120, 40)
	Frame(c, Dashboard{Selector: rolodex.New(nil), Legend: "q: quit"})
	if !strings.Contains(c.Line(20), emptyState) {
		t.Fatalf("expected empty-state message on center row")
	}
	for y := 0; y < 40; y++ {
		line := c.Line(y)
		if y != 20 && strings.TrimSpace(line) != "" {
			t.Fatalf("row %d should be blank, got %q", y, line)
		}
	}
}

func TestFrameSingleEntryPlaceholders(t *testing.T) {
	c := canvas.New(120, 40)
	entries := []model.Entry{mustEntry(t, 1, "2023-01-01", 90)}
	Frame(c, Dashboard{Selector: rolodex.New([]model.Component{glucose()}), Entries: entries})
	l := layout.Compute(120, 40)

	for i := 0; i < 2; i++ {
		x := layout.BoxColumns[i]
		if got := c.Text(x+4, l.BoxY+2, 3); got != Placeholder {
			t.Fatalf("box %d: expected placeholder, got %q", i, got)
		}
		if got := strings.TrimSpace(c.Text(x, l.BoxY-1, 10)); got != "" {
			t.Fatalf("box %d: placeholder should not show a date, got %q", i, got)
		}
	}
	if got := strings.TrimSpace(c.Text(layout.BoxColumns[2]+1, l.BoxY+2, 9)); got != "90.0" {
		t.Fatalf("expected newest value in right box, got %q", got)
	}
	if got := c.Text(layout.GraphX+5, l.CenterY, 7); got != "Need 2+" {
		t.Fatalf("expected graph placeholder, got %q", got)
	}
	if got := c.Text(layout.GraphX, l.GraphY, 1); got == "╔" {
		t.Fatalf("graph frame should not be drawn")
	}
}

func TestValueBoxTruncatesAndAlerts(t *testing.T) {
	if got := BoxValue(123456789.25); got != "12345678" {
		t.Fatalf("expected 8-char truncation, got %q", got)
	}
	if got := BoxValue(6.25); got != "6.2" && got != "6.3" {
		t.Fatalf("unexpected one-decimal format %q", got)
	}

	c := canvas.New(30, 10)
	hi := 100.0
	comp := model.Component{Name: "Glucose", Unit: "mg/dL", NormalMax: &hi}
	e := mustEntry(t, 1, "2023-01-05", 110)
	ValueBox(c, 2, 2, &e, comp)
	if c.PenAt(2+3, 4) != canvas.PenAlert {
		t.Fatalf("expected out-of-range value in alert pen")
	}
	if got := c.Text(2, 2, 11); got != "╔═════════╗" {
		t.Fatalf("unexpected top border %q", got)
	}
	if got := c.Text(2, 6, 11); got != "╚═════════╝" {
		t.Fatalf("unexpected bottom border %q", got)
	}
}

func TestGraphNormalRangeRow(t *testing.T) {
	c := canvas.New(120, 40)
	lo := 95.0
	comp := glucose()
	comp.NormalMin = &lo
	Graph(c, layout.GraphX, 10, comp, scenarioEntries(t))
	ox, oy := layout.GraphX+layout.PlotInsetX, 10+layout.PlotInsetY
	// 95 maps to row 9 of the padded [88,112] range.
	if c.PenAt(ox+2, oy+9) != canvas.PenRange {
		t.Fatalf("expected normal-range dots on row 9")
	}
	if c.Text(ox+layout.PlotWidth-1, oy+9, 1) != "●" {
		t.Fatalf("expected the 95 marker to overwrite the range row")
	}
}

func TestGraphInlineError(t *testing.T) {
	c := canvas.New(120, 40)
	entries := []model.Entry{
		mustEntry(t, 1, "2023-01-01", 90),
		mustEntry(t, 2, "2023-01-02", math.NaN()),
	}
	Graph(c, layout.GraphX, 10, glucose(), entries)
	row := c.Line(10 + layout.PlotInsetY + layout.PlotHeight/2)
	if !strings.Contains(row, "Graph error:") {
		t.Fatalf("expected inline graph error, got %q", row)
	}
	if c.Text(layout.GraphX, 10, 1) != "╔" {
		t.Fatalf("expected graph frame to still be drawn")
	}
}

func TestFormDialog(t *testing.T) {
	c := canvas.New(120, 40)
	l := layout.Compute(120, 40)
	f := modal.NewForm("New Entry: Glucose",
		modal.Field{Label: "Value (mg/dL):", MaxLen: 20},
		modal.Field{Label: "Date (YYYY-MM-DD) [Enter=today]:", MaxLen: 20},
	)
	f = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("90")})
	f = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	Form(c, l, f, layout.FormWidth, 12)

	r := l.Modal(layout.FormWidth, 12)
	if !strings.Contains(c.Text(r.X, r.Y+1, r.W), "New Entry: Glucose") {
		t.Fatalf("expected title row")
	}
	if got := c.Text(r.X, r.Y+2, 1); got != "╟" {
		t.Fatalf("expected divider, got %q", got)
	}
	_, valueY := r.FieldRows(0)
	if got := c.Text(r.X+2, valueY, 2); got != "90" {
		t.Fatalf("expected accepted value, got %q", got)
	}
	dateLabelY, dateY := r.FieldRows(1)
	if !strings.HasPrefix(c.Text(r.X+2, dateLabelY, 40), "Date (YYYY-MM-DD)") {
		t.Fatalf("expected second label")
	}
	if c.PenAt(r.X+2, dateY) != canvas.PenInputCursor {
		t.Fatalf("expected cursor cell at start of empty input")
	}
	if c.PenAt(r.X+3, dateY) != canvas.PenInput {
		t.Fatalf("expected input background")
	}
}

func TestPickerDialog(t *testing.T) {
	c := canvas.New(120, 40)
	l := layout.Compute(120, 40)
	e := mustEntry(t, 1, "2023-01-05", 110)
	e.Notes = "fasting"
	rows := []string{EntryRow(e, "mg/dL"), "second"}
	if rows[0] != "2023-01-05  110.00 mg/dL  (fasting)" {
		t.Fatalf("unexpected entry row %q", rows[0])
	}
	Picker(c, l, "Edit Entry: Glucose", rows, 1, "edit")
	r := l.Modal(layout.PickerWidth, PickerHeight(2))
	if got := c.Text(r.X+2, r.Y+4, 8); got != "→ second" {
		t.Fatalf("expected highlighted row, got %q", got)
	}
	if c.PenAt(r.X+2, r.Y+4) != canvas.PenNoticeBold || c.PenAt(r.X+2, r.Y+3) != canvas.PenLabel {
		t.Fatalf("unexpected row pens")
	}
	if !strings.Contains(c.Line(r.Y+r.H-2), "Enter: edit") {
		t.Fatalf("expected instructions row")
	}
	if PickerHeight(10) != layout.PickerMaxHeight || PickerHeight(1) != 6 {
		t.Fatalf("unexpected picker heights")
	}
}

func TestCalibrationScreens(t *testing.T) {
	small := canvas.New(100, 30)
	Calibration(small)
	var all strings.Builder
	for y := 0; y < 30; y++ {
		all.WriteString(small.Line(y))
		all.WriteString("\n")
	}
	out := all.String()
	for _, want := range []string{"TERMINAL CALIBRATION REQUIRED", "Current size: 100x30", "Required:     120x40"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in calibration screen", want)
		}
	}

	ok := canvas.New(120, 40)
	Calibration(ok)
	if got := ok.Text(45, 20, 16); got != "TERMINAL SIZE OK" {
		t.Fatalf("expected size ok, got %q", got)
	}
}

func TestWelcomeScreen(t *testing.T) {
	c := canvas.New(120, 40)
	Welcome(c)
	found := false
	for y := 0; y < 40; y++ {
		if strings.Contains(c.Line(y), "WELCOME TO BLOOD PANEL ROLODEX") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected welcome banner")
	}
}

func TestMessageOverlay(t *testing.T) {
	c := canvas.New(120, 40)
	l := layout.Compute(120, 40)
	Message(c, l, "Entry added! Press any key to continue.")
	if !strings.Contains(c.Line(l.CenterY), "Entry added!") {
		t.Fatalf("expected message on center row")
	}
}
