package modal

import tea "github.com/charmbracelet/bubbletea"

// MaxPickerItems caps the rows offered by a picker.
const MaxPickerItems = 10

// Picker selects one item from a fixed list.
type Picker[T any] struct {
	items    []T
	selected int
	state    State
}

// NewPicker returns a picker over at most MaxPickerItems items.
func NewPicker[T any](items []T) Picker[T] {
	if len(items) > MaxPickerItems {
		items = items[:MaxPickerItems]
	}
	return Picker[T]{items: items}
}

// Update applies one key event. Up and down wrap around.
func (p Picker[T]) Update(msg tea.KeyMsg) Picker[T] {
	if p.state != StateActive {
		return p
	}
	n := len(p.items)
	switch msg.Type {
	case tea.KeyUp:
		if n > 0 {
			p.selected = (p.selected - 1 + n) % n
		}
	case tea.KeyDown:
		if n > 0 {
			p.selected = (p.selected + 1) % n
		}
	case tea.KeyEnter:
		if n == 0 {
			p.state = StateCancelled
			break
		}
		p.state = StateSubmitted
	case tea.KeyEsc:
		p.state = StateCancelled
	}
	return p
}

// Items returns the offered items.
func (p Picker[T]) Items() []T { return p.items }

// Selected returns the highlighted row.
func (p Picker[T]) Selected() int { return p.selected }

// State returns the picker state.
func (p Picker[T]) State() State { return p.state }

// Choice returns the confirmed item.
func (p Picker[T]) Choice() (T, bool) {
	var zero T
	if p.state != StateSubmitted || len(p.items) == 0 {
		return zero, false
	}
	return p.items[p.selected], true
}
