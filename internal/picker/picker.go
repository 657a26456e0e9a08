// Copyright © 2025 snipforge authors
// SPDX-License-Identifier: MIT

// Package picker is the interactive asset picker: a full-screen list of
// manifest entries; the selected entry is handed back to the caller.
package picker

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/snipforge/snipctl/internal/manifest"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type item struct {
	entry manifest.Entry
}

func (i item) Title() string       { return i.entry.Name }
func (i item) Description() string { return i.entry.Kind }
func (i item) FilterValue() string { return i.entry.Name }

type model struct {
	list   list.Model
	choice *manifest.Entry
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok {
				entry := it.entry
				m.choice = &entry
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return docStyle.Render(m.list.View())
}

// Run shows the picker and returns the chosen entry, or nil if the user
// quit without choosing.
func Run(title string, entries []manifest.Entry) (*manifest.Entry, error) {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, item{entry: e})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title

	out, err := tea.NewProgram(model{list: l}, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}

	return out.(model).choice, nil
}
