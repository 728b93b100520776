package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

const legendSeparator = "  │  "

type keyMap struct {
	Down      key.Binding
	Up        key.Binding
	New       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Component key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k/↑↓", "nav")),
		Up:        key.NewBinding(key.WithKeys("k", "up")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Component: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "component")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// Legend renders the one-line dashboard key legend.
func (k keyMap) Legend() string {
	bindings := []key.Binding{k.Down, k.New, k.Edit, k.Delete, k.Component, k.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return strings.Join(parts, legendSeparator)
}
