// Package rolodex keeps the circular component selection and its
// five-slot perspective window.
package rolodex

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/bloodroll/internal/model"
)

// Reach is how many slots are shown on each side of the selection.
const Reach = 2

// Name widths per distance from the selection.
const (
	SelectedWidth = 20
	NearWidth     = 15
	FarWidth      = 12
)

// Weight is the visual emphasis of a slot.
type Weight int

const (
	WeightSelected Weight = iota
	WeightNear
	WeightFar
)

// Slot is one visible row of the rolodex.
type Slot struct {
	Component model.Component
	Offset    int
	Index     int
}

// Selector is an immutable view over an ordered component list.
type Selector struct {
	components []model.Component
	current    int
}

// New returns a selector positioned on the first component.
func New(components []model.Component) Selector {
	return Selector{components: components}
}

// Len returns the number of components.
func (s Selector) Len() int { return len(s.components) }

// Index returns the current position.
func (s Selector) Index() int { return s.current }

// Components returns the underlying list.
func (s Selector) Components() []model.Component { return s.components }

// Current returns the selected component. ok is false when the list is empty.
func (s Selector) Current() (model.Component, bool) {
	if len(s.components) == 0 {
		return model.Component{}, false
	}
	return s.components[s.current], true
}

// Next moves the selection down one slot, wrapping around.
func (s Selector) Next() Selector {
	return s.step(1)
}

// Prev moves the selection up one slot, wrapping around.
func (s Selector) Prev() Selector {
	return s.step(-1)
}

func (s Selector) step(delta int) Selector {
	n := len(s.components)
	if n == 0 {
		return s
	}
	s.current = wrap(s.current+delta, n)
	return s
}

// Reset swaps in a reloaded component list and clamps the selection.
func (s Selector) Reset(components []model.Component) Selector {
	s.components = components
	switch {
	case len(components) == 0:
		s.current = 0
	case s.current >= len(components):
		s.current = len(components) - 1
	case s.current < 0:
		s.current = 0
	}
	return s
}

// SelectID moves the selection to the component with id, if present.
func (s Selector) SelectID(id int64) Selector {
	for i, c := range s.components {
		if c.ID == id {
			s.current = i
			return s
		}
	}
	return s
}

// Window returns the slots for offsets -Reach..Reach. When the list is
// shorter than the window the same component repeats. Empty lists yield nil.
func (s Selector) Window() []Slot {
	n := len(s.components)
	if n == 0 {
		return nil
	}
	slots := make([]Slot, 0, 2*Reach+1)
	for offset := -Reach; offset <= Reach; offset++ {
		idx := wrap(s.current+offset, n)
		slots = append(slots, Slot{Component: s.components[idx], Offset: offset, Index: idx})
	}
	return slots
}

// WeightFor maps a slot offset to its emphasis.
func WeightFor(offset int) Weight {
	switch offset {
	case 0:
		return WeightSelected
	case 1, -1:
		return WeightNear
	default:
		return WeightFar
	}
}

// Label returns the text drawn for a component at the given offset.
func Label(c model.Component, offset int) string {
	switch WeightFor(offset) {
	case WeightSelected:
		return Ellipsize(fmt.Sprintf("%s (%s)", c.Name, c.Unit), SelectedWidth)
	case WeightNear:
		return runewidth.Truncate(c.Name, NearWidth, "")
	default:
		return runewidth.Truncate(c.Name, FarWidth, "")
	}
}

// Ellipsize truncates s to width cells, ending in "..." when cut.
func Ellipsize(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
