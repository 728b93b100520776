// Package modal implements the dialog state machines: a single-line editor,
// a sequential multi-field form, and a list picker.
package modal

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// State is the lifecycle of a modal state machine.
type State int

const (
	// StateActive means the modal still owns input.
	StateActive State = iota
	// StateSubmitted means enter was pressed (or the picker confirmed).
	StateSubmitted
	// StateCancelled means escape was pressed or a required field was left empty.
	StateCancelled
	// StateFailed means a submitted value did not validate.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateSubmitted:
		return "submitted"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LineEditor is a bounded single-line text buffer with a cursor.
type LineEditor struct {
	text   []rune
	cursor int
	maxLen int
	state  State
}

// NewLineEditor returns an empty editor accepting at most maxLen runes.
func NewLineEditor(maxLen int) LineEditor {
	if maxLen < 0 {
		maxLen = 0
	}
	return LineEditor{maxLen: maxLen}
}

// NewPrefilled returns an editor seeded with initial and the cursor at its end.
func NewPrefilled(maxLen int, initial string) LineEditor {
	e := NewLineEditor(maxLen)
	runes := []rune(initial)
	if len(runes) > e.maxLen {
		runes = runes[:e.maxLen]
	}
	e.text = runes
	e.cursor = len(runes)
	return e
}

// Update applies one key event. Finished editors ignore further input.
func (e LineEditor) Update(msg tea.KeyMsg) LineEditor {
	if e.state != StateActive {
		return e
	}
	switch msg.Type {
	case tea.KeyEnter:
		e.state = StateSubmitted
	case tea.KeyEsc:
		e.state = StateCancelled
	case tea.KeyBackspace, tea.KeyDelete:
		e.deleteBack()
	case tea.KeyLeft:
		if e.cursor > 0 {
			e.cursor--
		}
	case tea.KeyRight:
		if e.cursor < len(e.text) {
			e.cursor++
		}
	case tea.KeySpace:
		e.insert(' ')
	case tea.KeyRunes:
		if msg.Alt {
			return e
		}
		for _, r := range msg.Runes {
			e.insert(r)
		}
	}
	return e
}

func (e *LineEditor) insert(r rune) {
	if !unicode.IsPrint(r) || len(e.text) >= e.maxLen {
		return
	}
	text := make([]rune, 0, len(e.text)+1)
	text = append(text, e.text[:e.cursor]...)
	text = append(text, r)
	text = append(text, e.text[e.cursor:]...)
	e.text = text
	e.cursor++
}

func (e *LineEditor) deleteBack() {
	if e.cursor == 0 {
		return
	}
	e.text = append(e.text[:e.cursor-1:e.cursor-1], e.text[e.cursor:]...)
	e.cursor--
}

// Value returns the raw buffer.
func (e LineEditor) Value() string { return string(e.text) }

// Result returns the trimmed buffer once submitted, empty otherwise.
func (e LineEditor) Result() string {
	if e.state != StateSubmitted {
		return ""
	}
	return strings.TrimSpace(string(e.text))
}

// Cursor returns the cursor offset in runes.
func (e LineEditor) Cursor() int { return e.cursor }

// MaxLen returns the buffer bound.
func (e LineEditor) MaxLen() int { return e.maxLen }

// State returns the editor state.
func (e LineEditor) State() State { return e.state }
