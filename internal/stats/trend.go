// Package stats maps entry histories onto the dashboard's fixed grids.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/verte-zerg/bloodroll/internal/model"
)

// ErrNotEnoughData is returned when a series has fewer than two entries.
var ErrNotEnoughData = errors.New("need 2+ entries")

const rangePadding = 0.1

// Point is one entry mapped to a plot cell.
type Point struct {
	X     int
	Y     int
	Value float64
	Entry model.Entry
}

// Trend is a series mapped onto a width x height plot.
// Min and Max are the padded bounds used for scaling.
type Trend struct {
	Points []Point
	Min    float64
	Max    float64
	Width  int
	Height int
}

// MapTrend sorts entries by date and maps each onto the plot grid.
// Row 0 is the top of the plot. Coordinates are truncated, not rounded.
func MapTrend(entries []model.Entry, width, height int) (Trend, error) {
	if len(entries) < 2 {
		return Trend{}, ErrNotEnoughData
	}
	if width < 1 || height < 1 {
		return Trend{}, fmt.Errorf("invalid plot size %dx%d", width, height)
	}

	sorted := SortByDate(entries)
	values := make([]float64, len(sorted))
	for i, e := range sorted {
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			return Trend{}, fmt.Errorf("entry %d has non-finite value", e.ID)
		}
		values[i] = e.Value
	}

	minVal, maxVal := seriesMinMaxSingle(values)
	valRange := maxVal - minVal
	if valRange == 0 {
		valRange = 1
	}
	minVal -= valRange * rangePadding
	maxVal += valRange * rangePadding
	valRange = maxVal - minVal

	t := Trend{
		Points: make([]Point, 0, len(sorted)),
		Min:    minVal,
		Max:    maxVal,
		Width:  width,
		Height: height,
	}
	last := len(sorted) - 1
	for i, e := range sorted {
		x := int(float64(i) / float64(last) * float64(width-1))
		t.Points = append(t.Points, Point{
			X:     x,
			Y:     valueToRow(e.Value, minVal, valRange, height),
			Value: e.Value,
			Entry: e,
		})
	}
	return t, nil
}

// RangeRow maps a reference value such as a normal-range bound onto the plot.
// ok is false when the value falls outside the padded bounds.
func (t Trend) RangeRow(value float64) (row int, ok bool) {
	if t.Height < 1 || value < t.Min || value > t.Max {
		return 0, false
	}
	return valueToRow(value, t.Min, t.Max-t.Min, t.Height), true
}

// SortByDate returns a copy of entries ordered by date ascending.
// Entries sharing a date keep their relative order.
func SortByDate(entries []model.Entry) []model.Entry {
	out := make([]model.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// LatestSlots returns n display slots ordered oldest to newest from a
// most-recent-first history. Missing slots are nil and sit on the left.
func LatestSlots(recentFirst []model.Entry, n int) []*model.Entry {
	slots := make([]*model.Entry, n)
	take := minInt(n, len(recentFirst))
	for i := 0; i < take; i++ {
		e := recentFirst[i]
		slots[n-1-i] = &e
	}
	return slots
}

func seriesMinMaxSingle(values []float64) (float64, float64) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if minVal == math.Inf(1) {
		minVal = 0
	}
	if maxVal == math.Inf(-1) {
		maxVal = 0
	}
	return minVal, maxVal
}

func valueToRow(v, minVal, valRange float64, height int) int {
	if height <= 1 {
		return 0
	}
	row := int((1 - (v-minVal)/valRange) * float64(height-1))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
