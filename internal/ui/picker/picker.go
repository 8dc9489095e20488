// Package picker implements the interactive selector shown when
// --serial is literally "?". The flash command has no picker for
// --board; a "?" there is looked up as a board id.
package picker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mpflash/mpflash/internal/ui/style"
)

// item is one selectable entry; label is what's shown, value is what's
// returned to the caller.
type item struct {
	label string
	value string
}

func (i item) Title() string       { return i.label }
func (i item) Description() string { return i.value }
func (i item) FilterValue() string { return i.label }

type model struct {
	list     list.Model
	chosen   string
	quitting bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok {
				m.chosen = it.value
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Options is one (label, value) pair offered to the operator.
type Options struct {
	Label string
	Value string
}

// Pick runs an interactive list prompt titled title over choices and
// returns the chosen value, or an empty string if the operator
// cancelled.
func Pick(title string, choices []Options) (string, error) {
	items := make([]list.Item, 0, len(choices))
	for _, c := range choices {
		items = append(items, item{label: c.Label, value: c.Value})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.Styles.Title = style.OK

	m := model{list: l}
	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}
	final := result.(model)
	return final.chosen, nil
}
