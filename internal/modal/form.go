package modal

import tea "github.com/charmbracelet/bubbletea"

// Field describes one prompt of a form.
type Field struct {
	Label   string
	MaxLen  int
	Initial string
	// Optional fields accept an empty submission as "".
	Optional bool
	// Default supplies the value for an empty submission.
	Default  func() string
	Validate func(string) error
}

// Form runs its fields one after another. Nothing is returned to the caller
// until every field has been submitted and validated.
type Form struct {
	title  string
	fields []Field
	index  int
	editor LineEditor
	values []string
	state  State
	err    error
}

// NewForm starts a form on its first field.
func NewForm(title string, fields ...Field) Form {
	f := Form{title: title, fields: fields, values: make([]string, 0, len(fields))}
	if len(fields) == 0 {
		f.state = StateSubmitted
		return f
	}
	f.editor = editorFor(fields[0])
	return f
}

func editorFor(field Field) LineEditor {
	return NewPrefilled(field.MaxLen, field.Initial)
}

// Update forwards a key to the active field's editor.
func (f Form) Update(msg tea.KeyMsg) Form {
	if f.state != StateActive {
		return f
	}
	f.editor = f.editor.Update(msg)
	switch f.editor.State() {
	case StateCancelled:
		f.state = StateCancelled
	case StateSubmitted:
		f = f.accept(f.editor.Result())
	}
	return f
}

func (f Form) accept(value string) Form {
	field := f.fields[f.index]
	if value == "" {
		switch {
		case field.Default != nil:
			value = field.Default()
		case !field.Optional:
			f.state = StateCancelled
			return f
		}
	}
	if value != "" && field.Validate != nil {
		if err := field.Validate(value); err != nil {
			f.state = StateFailed
			f.err = err
			return f
		}
	}
	f.values = append(f.values, value)
	f.index++
	if f.index == len(f.fields) {
		f.state = StateSubmitted
		return f
	}
	f.editor = editorFor(f.fields[f.index])
	return f
}

// Title returns the dialog title.
func (f Form) Title() string { return f.title }

// Fields returns the field definitions.
func (f Form) Fields() []Field { return f.fields }

// Index returns the position of the field being edited.
func (f Form) Index() int { return f.index }

// Editor returns the active field's editor.
func (f Form) Editor() LineEditor { return f.editor }

// Values returns the accepted values so far, in field order.
func (f Form) Values() []string { return f.values }

// State returns the form state.
func (f Form) State() State { return f.state }

// Err returns the validation error of a failed form.
func (f Form) Err() error { return f.err }
