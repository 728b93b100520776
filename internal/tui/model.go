// Package tui provides the Bubble Tea dashboard.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/bloodroll/internal/canvas"
	"github.com/verte-zerg/bloodroll/internal/layout"
	"github.com/verte-zerg/bloodroll/internal/model"
	"github.com/verte-zerg/bloodroll/internal/render"
	"github.com/verte-zerg/bloodroll/internal/rolodex"
)

// Store is the persistence the dashboard needs.
type Store interface {
	ListComponents(ctx context.Context) ([]model.Component, error)
	CreateComponent(ctx context.Context, c model.Component) (int64, error)
	ListEntries(ctx context.Context, componentID int64, limit int) ([]model.Entry, error)
	AddEntry(ctx context.Context, e model.Entry) (int64, error)
	UpdateEntry(ctx context.Context, e model.Entry) error
	DeleteEntry(ctx context.Context, id int64) error
}

type screen int

const (
	screenCalibrate screen = iota
	screenWelcome
	screenDashboard
	screenForm
	screenPicker
	screenMessage
)

func (s screen) String() string {
	switch s {
	case screenCalibrate:
		return "calibrate"
	case screenWelcome:
		return "welcome"
	case screenDashboard:
		return "dashboard"
	case screenForm:
		return "form"
	case screenPicker:
		return "picker"
	case screenMessage:
		return "message"
	default:
		return "unknown"
	}
}

// Model is the dashboard state. Every Update returns a new value.
type Model struct {
	store Store
	keys  keyMap
	today func() time.Time

	width  int
	height int

	screen  screen
	sel     rolodex.Selector
	entries []model.Entry

	form    formDialog
	picker  entryPicker
	message string

	err error
}

// Option customizes a Model.
type Option func(*Model)

// WithClock overrides the source of "today" for new entries.
func WithClock(today func() time.Time) Option {
	return func(m *Model) {
		m.today = today
	}
}

// NewModel loads the component list and returns a model at the calibration gate.
func NewModel(store Store, opts ...Option) (Model, error) {
	m := Model{
		store:  store,
		keys:   defaultKeyMap(),
		today:  time.Now,
		screen: screenCalibrate,
	}
	for _, opt := range opts {
		opt(&m)
	}
	components, err := store.ListComponents(context.Background())
	if err != nil {
		return Model{}, err
	}
	m.sel = rolodex.New(components)
	m, err = m.loadEntries()
	if err != nil {
		return Model{}, err
	}
	return m, nil
}

// Err returns the store failure that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.screen {
		case screenCalibrate:
			return m.updateCalibrate(msg)
		case screenWelcome:
			return m.openComponentForm(), nil
		case screenDashboard:
			return m.updateDashboard(msg)
		case screenForm:
			return m.updateForm(msg)
		case screenPicker:
			return m.updatePicker(msg)
		case screenMessage:
			return m.show(screenDashboard), nil
		}
	}
	return m, nil
}

func (m Model) updateCalibrate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !layout.Fits(m.width, m.height) {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	log.Debug().Int("width", m.width).Int("height", m.height).Msg("terminal calibrated")
	if m.sel.Len() == 0 {
		return m.show(screenWelcome), nil
	}
	return m.show(screenDashboard), nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.sel = m.sel.Next()
		m, err = m.loadEntries()
	case key.Matches(msg, m.keys.Up):
		m.sel = m.sel.Prev()
		m, err = m.loadEntries()
	case key.Matches(msg, m.keys.Component):
		return m.openComponentForm(), nil
	case key.Matches(msg, m.keys.New):
		if comp, ok := m.sel.Current(); ok {
			return m.openEntryForm(comp), nil
		}
	case key.Matches(msg, m.keys.Edit):
		m, err = m.openPicker(editAction)
	case key.Matches(msg, m.keys.Delete):
		m, err = m.openPicker(deleteAction)
	}
	if err != nil {
		return m.fail(err)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	c := canvas.New(m.width, m.height)
	l := layout.Compute(m.width, m.height)
	switch m.screen {
	case screenCalibrate:
		render.Calibration(c)
	case screenWelcome:
		render.Welcome(c)
	case screenDashboard:
		render.Frame(c, m.dashboard())
	case screenForm:
		blank(c)
		render.Form(c, l, m.form.form, m.form.width, m.form.height)
	case screenPicker:
		blank(c)
		render.Picker(c, l, m.picker.title, m.picker.rows(), m.picker.picker.Selected(), m.picker.action.verb)
	case screenMessage:
		render.Frame(c, m.dashboard())
		render.Message(c, l, m.message)
	}
	return c.Render()
}

func blank(c *canvas.Canvas) {
	c.Clear()
	c.Fill(canvas.PenBackground)
}

func (m Model) dashboard() render.Dashboard {
	return render.Dashboard{
		Selector: m.sel,
		Entries:  m.entries,
		Legend:   m.keys.Legend(),
	}
}

func (m Model) show(s screen) Model {
	if m.screen != s {
		log.Debug().Stringer("from", m.screen).Stringer("to", s).Msg("screen changed")
	}
	m.screen = s
	return m
}

func (m Model) notify(text string) Model {
	m.message = text
	return m.show(screenMessage)
}

// fail records a store error and stops the program.
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	log.Error().Err(err).Msg("store access failed")
	m.err = err
	return m, tea.Quit
}

// loadEntries refreshes the selected component's full history.
func (m Model) loadEntries() (Model, error) {
	comp, ok := m.sel.Current()
	if !ok {
		m.entries = nil
		return m, nil
	}
	entries, err := m.store.ListEntries(context.Background(), comp.ID, 0)
	if err != nil {
		return m, err
	}
	m.entries = entries
	return m, nil
}

// loadComponents reloads the component list, selects id when non-zero,
// and refreshes the entries.
func (m Model) loadComponents(id int64) (Model, error) {
	components, err := m.store.ListComponents(context.Background())
	if err != nil {
		return m, err
	}
	m.sel = m.sel.Reset(components)
	if id != 0 {
		m.sel = m.sel.SelectID(id)
	}
	return m.loadEntries()
}
