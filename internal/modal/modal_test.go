package modal

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeInto(e LineEditor, s string) LineEditor {
	for _, r := range s {
		e = e.Update(runes(string(r)))
	}
	return e
}

func TestLineEditorBackspaceThenInsert(t *testing.T) {
	e := typeInto(NewLineEditor(5), "hello")
	e = e.Update(key(tea.KeyBackspace))
	e = e.Update(runes("p"))
	if e.Value() != "hellp" || e.Cursor() != 5 {
		t.Fatalf("expected hellp with cursor 5, got %q cursor %d", e.Value(), e.Cursor())
	}
}

func TestLineEditorMaxLength(t *testing.T) {
	e := typeInto(NewLineEditor(3), "abcdef")
	if e.Value() != "abc" || e.Cursor() != 3 {
		t.Fatalf("expected abc, got %q cursor %d", e.Value(), e.Cursor())
	}
	e = e.Update(key(tea.KeySpace))
	if e.Value() != "abc" {
		t.Fatalf("space should be dropped at max length, got %q", e.Value())
	}
}

func TestLineEditorCursorMovement(t *testing.T) {
	e := typeInto(NewLineEditor(10), "ac")
	e = e.Update(key(tea.KeyLeft))
	e = e.Update(runes("b"))
	if e.Value() != "abc" || e.Cursor() != 2 {
		t.Fatalf("expected insert at cursor, got %q cursor %d", e.Value(), e.Cursor())
	}
	for i := 0; i < 5; i++ {
		e = e.Update(key(tea.KeyLeft))
	}
	if e.Cursor() != 0 {
		t.Fatalf("cursor should clamp at 0, got %d", e.Cursor())
	}
	e = e.Update(key(tea.KeyBackspace))
	if e.Value() != "abc" {
		t.Fatalf("backspace at 0 should be a no-op, got %q", e.Value())
	}
	for i := 0; i < 5; i++ {
		e = e.Update(key(tea.KeyRight))
	}
	if e.Cursor() != 3 {
		t.Fatalf("cursor should clamp at len, got %d", e.Cursor())
	}
	e = e.Update(key(tea.KeyUp))
	e = e.Update(key(tea.KeyF1))
	if e.Value() != "abc" || e.State() != StateActive {
		t.Fatalf("navigation keys should be ignored")
	}
}

func TestLineEditorSubmitAndCancel(t *testing.T) {
	e := typeInto(NewLineEditor(10), "  90 ")
	if e.Result() != "" {
		t.Fatalf("result should be empty before submit")
	}
	e = e.Update(key(tea.KeyEnter))
	if e.State() != StateSubmitted || e.Result() != "90" {
		t.Fatalf("expected trimmed submit, got %v %q", e.State(), e.Result())
	}
	e = e.Update(runes("x"))
	if e.Value() != "  90 " {
		t.Fatalf("finished editor should ignore input")
	}

	c := typeInto(NewLineEditor(10), "abc").Update(key(tea.KeyEsc))
	if c.State() != StateCancelled || c.Result() != "" {
		t.Fatalf("expected cancelled with empty result")
	}
}

func TestLineEditorPrefilled(t *testing.T) {
	e := NewPrefilled(5, "2023-01-01")
	if e.Value() != "2023-" || e.Cursor() != 5 {
		t.Fatalf("expected truncated prefill, got %q cursor %d", e.Value(), e.Cursor())
	}
	e = NewPrefilled(10, "95")
	e = e.Update(key(tea.KeyBackspace)).Update(runes("8"))
	if e.Value() != "98" {
		t.Fatalf("expected 98, got %q", e.Value())
	}
}

func TestLineEditorIgnoresAltAndControlRunes(t *testing.T) {
	e := NewLineEditor(10)
	e = e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true})
	e = e.Update(runes("\x07"))
	if e.Value() != "" {
		t.Fatalf("expected nothing inserted, got %q", e.Value())
	}
}

func submit(f Form, s string) Form {
	for _, r := range s {
		f = f.Update(runes(string(r)))
	}
	return f.Update(key(tea.KeyEnter))
}

var errBad = errors.New("bad")

func numeric(s string) error {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return errBad
		}
	}
	return nil
}

func entryForm() Form {
	return NewForm("New entry",
		Field{Label: "Value", MaxLen: 20, Validate: numeric},
		Field{Label: "Date", MaxLen: 20, Default: func() string { return "2024-02-03" }},
		Field{Label: "Notes", MaxLen: 40, Optional: true},
	)
}

func TestFormCompletes(t *testing.T) {
	f := entryForm()
	f = submit(f, "90")
	if f.Index() != 1 || f.State() != StateActive {
		t.Fatalf("expected second field, got index %d state %v", f.Index(), f.State())
	}
	f = submit(f, "")
	f = submit(f, "")
	if f.State() != StateSubmitted {
		t.Fatalf("expected submitted, got %v", f.State())
	}
	want := []string{"90", "2024-02-03", ""}
	for i, v := range want {
		if f.Values()[i] != v {
			t.Fatalf("value %d: expected %q, got %q", i, v, f.Values()[i])
		}
	}
}

func TestFormEmptyRequiredCancels(t *testing.T) {
	f := submit(entryForm(), "")
	if f.State() != StateCancelled || len(f.Values()) != 0 {
		t.Fatalf("expected cancel on empty required field, got %v", f.State())
	}
}

func TestFormValidationFails(t *testing.T) {
	f := submit(entryForm(), "abc")
	if f.State() != StateFailed || !errors.Is(f.Err(), errBad) {
		t.Fatalf("expected failed with errBad, got %v %v", f.State(), f.Err())
	}
	f = f.Update(runes("1"))
	if f.State() != StateFailed {
		t.Fatalf("failed form should ignore input")
	}
}

func TestFormEscapeMidway(t *testing.T) {
	f := submit(entryForm(), "90")
	f = f.Update(key(tea.KeyEsc))
	if f.State() != StateCancelled {
		t.Fatalf("expected cancel, got %v", f.State())
	}
}

func TestFormPrefilledFields(t *testing.T) {
	f := NewForm("Edit",
		Field{Label: "Value", MaxLen: 20, Initial: "95"},
		Field{Label: "Date", MaxLen: 20, Initial: "2023-01-10"},
	)
	if f.Editor().Value() != "95" {
		t.Fatalf("expected prefilled editor, got %q", f.Editor().Value())
	}
	f = f.Update(key(tea.KeyEnter))
	if f.Editor().Value() != "2023-01-10" {
		t.Fatalf("expected second field prefilled, got %q", f.Editor().Value())
	}
	f = f.Update(key(tea.KeyEnter))
	if f.State() != StateSubmitted || f.Values()[0] != "95" {
		t.Fatalf("unexpected form result %v %v", f.State(), f.Values())
	}
}

func TestPickerWrapsUp(t *testing.T) {
	p := NewPicker([]string{"a", "b", "c"})
	p = p.Update(key(tea.KeyUp))
	if p.Selected() != 2 {
		t.Fatalf("expected wrap to 2, got %d", p.Selected())
	}
	p = p.Update(key(tea.KeyDown))
	if p.Selected() != 0 {
		t.Fatalf("expected wrap to 0, got %d", p.Selected())
	}
}

func TestPickerConfirmAndCancel(t *testing.T) {
	p := NewPicker([]string{"a", "b", "c"})
	if _, ok := p.Choice(); ok {
		t.Fatalf("no choice before confirm")
	}
	p = p.Update(key(tea.KeyDown)).Update(key(tea.KeyEnter))
	if got, ok := p.Choice(); !ok || got != "b" {
		t.Fatalf("expected b, got %q %v", got, ok)
	}
	c := NewPicker([]string{"a"}).Update(key(tea.KeyEsc))
	if c.State() != StateCancelled {
		t.Fatalf("expected cancelled")
	}
	if _, ok := c.Choice(); ok {
		t.Fatalf("cancelled picker has no choice")
	}
	empty := NewPicker[string](nil).Update(key(tea.KeyEnter))
	if empty.State() != StateCancelled {
		t.Fatalf("empty picker cannot confirm")
	}
}

func TestPickerCapsItems(t *testing.T) {
	items := make([]int, 25)
	p := NewPicker(items)
	if len(p.Items()) != MaxPickerItems {
		t.Fatalf("expected %d items, got %d", MaxPickerItems, len(p.Items()))
	}
}
