package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/bloodroll/internal/layout"
	"github.com/verte-zerg/bloodroll/internal/modal"
	"github.com/verte-zerg/bloodroll/internal/model"
	"github.com/verte-zerg/bloodroll/internal/render"
)

// Field limits.
const (
	valueLen = 20
	dateLen  = 20
	notesLen = 40
	nameLen  = 40
	unitLen  = 20
	boundLen = 15

	entryFormHeight     = 12
	componentFormHeight = 18
)

// Notices shown after a dialog ends.
const (
	msgEntryAdded       = "Entry added! Press any key to continue."
	msgEntryUpdated     = "Entry updated! Press any key."
	msgEntryDeleted     = "Entry deleted! Press any key."
	msgComponentCreated = "Component created! Press any key to continue."
	msgNoEntriesEdit    = "No entries to edit. Press any key."
	msgNoEntriesDelete  = "No entries to delete. Press any key."
)

var (
	errInvalidValue  = errors.New("invalid value")
	errInvalidDate   = errors.New("invalid date format")
	errInvalidBound  = errors.New("invalid range bound")
	errDuplicateName = errors.New("component already exists")
)

func noticeFor(err error) string {
	switch {
	case errors.Is(err, errInvalidValue):
		return "Invalid value. Press any key to continue."
	case errors.Is(err, errInvalidDate):
		return "Invalid date format. Use YYYY-MM-DD. Press any key."
	case errors.Is(err, errInvalidBound):
		return "Invalid range value. Press any key to continue."
	case errors.Is(err, errDuplicateName):
		return "A component with that name already exists. Press any key."
	default:
		return "Invalid input. Press any key."
	}
}

func validateValue(s string) error {
	if _, err := model.ParseValue(s); err != nil {
		return fmt.Errorf("%w: %v", errInvalidValue, err)
	}
	return nil
}

func validateDate(s string) error {
	if _, err := model.ParseDate(s); err != nil {
		return fmt.Errorf("%w: %v", errInvalidDate, err)
	}
	return nil
}

func validateBound(s string) error {
	if _, err := model.ParseBound(s); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBound, err)
	}
	return nil
}

// submitFunc persists the values of a completed form and returns the notice
// to show. A non-nil error is a store failure.
type submitFunc func(m Model, values []string) (Model, string, error)

type formDialog struct {
	form   modal.Form
	width  int
	height int
	submit submitFunc
}

func (m Model) openForm(f modal.Form, width, height int, submit submitFunc) Model {
	m.form = formDialog{form: f, width: width, height: height, submit: submit}
	return m.show(screenForm)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.form.form = m.form.form.Update(msg)
	switch m.form.form.State() {
	case modal.StateCancelled:
		return m.show(screenDashboard), nil
	case modal.StateFailed:
		return m.notify(noticeFor(m.form.form.Err())), nil
	case modal.StateSubmitted:
		next, notice, err := m.form.submit(m, m.form.form.Values())
		if err != nil {
			return next.fail(err)
		}
		return next.notify(notice), nil
	}
	return m, nil
}

func (m Model) entryFields(comp model.Component, initial *model.Entry) []modal.Field {
	value := modal.Field{Label: fmt.Sprintf("Value (%s):", comp.Unit), MaxLen: valueLen, Validate: validateValue}
	date := modal.Field{Label: "Date (YYYY-MM-DD) [Enter=today]:", MaxLen: dateLen, Validate: validateDate}
	notes := modal.Field{Label: "Notes (optional):", MaxLen: notesLen, Optional: true}
	if initial == nil {
		today := m.today
		date.Default = func() string { return model.Day(today()).Format(model.DateLayout) }
	} else {
		value.Initial = model.FormatValue(initial.Value)
		date.Label = "Date (YYYY-MM-DD):"
		date.Initial = initial.DateString()
		notes.Initial = initial.Notes
	}
	return []modal.Field{value, date, notes}
}

func entryFromValues(values []string) (model.Entry, error) {
	v, err := model.ParseValue(values[0])
	if err != nil {
		return model.Entry{}, fmt.Errorf("%w: %v", errInvalidValue, err)
	}
	d, err := model.ParseDate(values[1])
	if err != nil {
		return model.Entry{}, fmt.Errorf("%w: %v", errInvalidDate, err)
	}
	return model.Entry{Value: v, Date: d, Notes: values[2]}, nil
}

func (m Model) openEntryForm(comp model.Component) Model {
	f := modal.NewForm("New Entry: "+comp.Name, m.entryFields(comp, nil)...)
	return m.openForm(f, layout.FormWidth, entryFormHeight, func(m Model, values []string) (Model, string, error) {
		e, err := entryFromValues(values)
		if err != nil {
			return m, noticeFor(err), nil
		}
		e.ComponentID = comp.ID
		if _, err := m.store.AddEntry(context.Background(), e); err != nil {
			return m, "", fmt.Errorf("failed to add entry: %w", err)
		}
		m, err = m.loadEntries()
		if err != nil {
			return m, "", err
		}
		return m, msgEntryAdded, nil
	})
}

func (m Model) openEditForm(comp model.Component, orig model.Entry) Model {
	f := modal.NewForm("Edit: "+comp.Name, m.entryFields(comp, &orig)...)
	return m.openForm(f, layout.FormWidth, entryFormHeight, func(m Model, values []string) (Model, string, error) {
		e, err := entryFromValues(values)
		if err != nil {
			return m, noticeFor(err), nil
		}
		e.ID = orig.ID
		e.ComponentID = orig.ComponentID
		if err := m.store.UpdateEntry(context.Background(), e); err != nil {
			return m, "", fmt.Errorf("failed to update entry: %w", err)
		}
		m, err = m.loadEntries()
		if err != nil {
			return m, "", err
		}
		return m, msgEntryUpdated, nil
	})
}

func (m Model) openComponentForm() Model {
	taken := make(map[string]struct{}, m.sel.Len())
	for _, c := range m.sel.Components() {
		taken[strings.ToLower(c.Name)] = struct{}{}
	}
	validateName := func(s string) error {
		if _, ok := taken[strings.ToLower(s)]; ok {
			return fmt.Errorf("%w: %q", errDuplicateName, s)
		}
		return nil
	}
	f := modal.NewForm("Create New Component",
		modal.Field{Label: "Component name (e.g., HbA1c):", MaxLen: nameLen, Validate: validateName},
		modal.Field{Label: "Unit (e.g., mmol/mol):", MaxLen: unitLen},
		modal.Field{Label: "Normal range minimum (optional):", MaxLen: boundLen, Optional: true, Validate: validateBound},
		modal.Field{Label: "Normal range maximum (optional):", MaxLen: boundLen, Optional: true, Validate: validateBound},
	)
	return m.openForm(f, layout.ComponentWidth, componentFormHeight, func(m Model, values []string) (Model, string, error) {
		lo, err := model.ParseBound(values[2])
		if err != nil {
			return m, noticeFor(errInvalidBound), nil
		}
		hi, err := model.ParseBound(values[3])
		if err != nil {
			return m, noticeFor(errInvalidBound), nil
		}
		id, err := m.store.CreateComponent(context.Background(), model.Component{
			Name:      values[0],
			Unit:      values[1],
			NormalMin: lo,
			NormalMax: hi,
		})
		if err != nil {
			return m, "", fmt.Errorf("failed to create component: %w", err)
		}
		m, err = m.loadComponents(id)
		if err != nil {
			return m, "", err
		}
		return m, msgComponentCreated, nil
	})
}

// pickAction runs on the entry confirmed in a picker.
type pickAction struct {
	verb    string
	title   string
	none    string
	confirm func(m Model, comp model.Component, e model.Entry) (Model, error)
}

var editAction = pickAction{
	verb:  "edit",
	title: "Edit Entry: ",
	none:  msgNoEntriesEdit,
	confirm: func(m Model, comp model.Component, e model.Entry) (Model, error) {
		return m.openEditForm(comp, e), nil
	},
}

var deleteAction = pickAction{
	verb:  "delete",
	title: "Delete Entry: ",
	none:  msgNoEntriesDelete,
	confirm: func(m Model, _ model.Component, e model.Entry) (Model, error) {
		if err := m.store.DeleteEntry(context.Background(), e.ID); err != nil {
			return m, fmt.Errorf("failed to delete entry: %w", err)
		}
		m, err := m.loadEntries()
		if err != nil {
			return m, err
		}
		return m.notify(msgEntryDeleted), nil
	},
}

type entryPicker struct {
	picker modal.Picker[model.Entry]
	comp   model.Component
	title  string
	action pickAction
}

func (p entryPicker) rows() []string {
	items := p.picker.Items()
	rows := make([]string, len(items))
	for i, e := range items {
		rows[i] = render.EntryRow(e, p.comp.Unit)
	}
	return rows
}

func (m Model) openPicker(action pickAction) (Model, error) {
	comp, ok := m.sel.Current()
	if !ok {
		return m, nil
	}
	entries, err := m.store.ListEntries(context.Background(), comp.ID, modal.MaxPickerItems)
	if err != nil {
		return m, err
	}
	if len(entries) == 0 {
		return m.notify(action.none), nil
	}
	m.picker = entryPicker{
		picker: modal.NewPicker(entries),
		comp:   comp,
		title:  action.title + comp.Name,
		action: action,
	}
	return m.show(screenPicker), nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.picker.picker = m.picker.picker.Update(msg)
	switch m.picker.picker.State() {
	case modal.StateCancelled:
		return m.show(screenDashboard), nil
	case modal.StateSubmitted:
		e, _ := m.picker.picker.Choice()
		next, err := m.picker.action.confirm(m, m.picker.comp, e)
		if err != nil {
			return next.fail(err)
		}
		return next, nil
	}
	return m, nil
}
