// Package layout computes absolute cell positions for the dashboard.
//
// Horizontal offsets are fixed design constants; only vertical placement
// depends on the terminal height.
package layout

// Minimum terminal size accepted by the calibration gate.
const (
	MinWidth  = 120
	MinHeight = 40
)

// Selector column.
const (
	ArrowX    = 6
	NameX     = 10
	SlotGap   = 2
	NameShift = 2
)

// Value boxes.
const (
	BoxWidth  = 11
	BoxHeight = 5
	BoxCount  = 3
)

// BoxColumns are the left edges of the three value boxes, oldest first.
var BoxColumns = [BoxCount]int{35, 48, 61}

// Trend graph panel.
const (
	GraphX      = 80
	GraphWidth  = 35
	GraphHeight = 18
	PlotWidth   = GraphWidth - 4
	PlotHeight  = GraphHeight - 4
	PlotInsetX  = 2
	PlotInsetY  = 2
)

// Modal sizes.
const (
	FormWidth       = 60
	ComponentWidth  = 70
	PickerWidth     = 80
	PickerMaxHeight = 15
	FieldRowStride  = 3
	FieldRowFirst   = 3
)

// Layout holds the frame-dependent positions.
type Layout struct {
	Width   int
	Height  int
	CenterY int
	BoxY    int
	GraphY  int
	LegendY int
}

// Compute derives the layout for a terminal of w x h cells.
func Compute(w, h int) Layout {
	center := h / 2
	return Layout{
		Width:   w,
		Height:  h,
		CenterY: center,
		BoxY:    center - 3,
		GraphY:  center - 10,
		LegendY: h - 2,
	}
}

// Fits reports whether a terminal passes the calibration gate.
func Fits(w, h int) bool {
	return w >= MinWidth && h >= MinHeight
}

// SlotY returns the row of the selector slot at offset.
func (l Layout) SlotY(offset int) int {
	return l.CenterY + offset*SlotGap
}

// SlotNameX returns the name column of the selector slot at offset.
// Slots further from the selection are indented.
func SlotNameX(offset int) int {
	return NameX + absInt(offset)*NameShift
}

// PlotOrigin returns the top-left cell of the graph plot area.
func (l Layout) PlotOrigin() (int, int) {
	return GraphX + PlotInsetX, l.GraphY + PlotInsetY
}

// Centered returns the start column that centers width cells in total.
func Centered(total, width int) int {
	x := (total - width) / 2
	if x < 0 {
		return 0
	}
	return x
}

// Rect is an absolute rectangle.
type Rect struct {
	X, Y, W, H int
}

// Modal centers a w x h dialog on the layout.
func (l Layout) Modal(w, h int) Rect {
	return Rect{X: Centered(l.Width, w), Y: Centered(l.Height, h), W: w, H: h}
}

// FieldRows returns the label and input rows of the i-th form field in r.
func (r Rect) FieldRows(i int) (label, input int) {
	label = r.Y + FieldRowFirst + i*FieldRowStride
	return label, label + 1
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
