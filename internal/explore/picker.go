package explore

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	pickerItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 0, 0, 2)
)

// Provider is one entry offered by the picker.
type Provider struct {
	Kind         string
	Name         string
	DefaultModel string
	HasKey       bool // a CLI key is configured
}

type pickerModel struct {
	providers []Provider
	cursor    int
	chosen    int // -1 = no choice yet, -2 = quit
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.chosen = -2
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.providers)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := titleStyle.Render("LexiRoute · Select a provider")
	s += "\n"

	for i, p := range m.providers {
		label := fmt.Sprintf("%s (%s)", p.Name, p.Kind)
		if p.HasKey {
			label += " ✓ key"
		}
		if i == m.cursor {
			s += pickerSelectedStyle.Render("> "+label) + "\n"
		} else {
			s += pickerItemStyle.Render(label) + "\n"
		}
	}

	s += hintStyle.Render("↑/↓/j/k navigate  enter select  q quit")
	return s
}

// RunProviderPicker shows an interactive provider selector.
// Returns the index of the chosen provider, or -1 if the user quit.
func RunProviderPicker(providers []Provider) (int, error) {
	m := pickerModel{
		providers: providers,
		chosen:    -1,
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return -1, err
	}

	final := result.(pickerModel)
	if final.chosen < 0 {
		return -1, nil
	}
	return final.chosen, nil
}
