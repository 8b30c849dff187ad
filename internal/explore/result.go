package explore

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/lexiroute/internal/model"
)

// Action is what the user chose to do after reading a result.
type Action int

const (
	ActionQuit           Action = iota
	ActionAgain                 // ask another prompt with the same provider
	ActionChangeProvider        // back to the picker
)

type resultModel struct {
	heading  string
	result   model.AnalysisResult
	err      error
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	action   Action
}

func (m resultModel) Init() tea.Cmd {
	return nil
}

func (m resultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Title (1 line) + border top/bottom (2) + status bar (1).
		w, h := max(m.width-4, 20), max(m.height-4, 5)
		if !m.ready {
			m.viewport = viewport.New(w, h)
			m.ready = true
		} else {
			m.viewport.Width = w
			m.viewport.Height = h
		}
		m.viewport.SetContent(m.render())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.action = ActionQuit
			return m, tea.Quit
		case "n", "enter":
			m.action = ActionAgain
			return m, tea.Quit
		case "p", "esc", "backspace":
			m.action = ActionChangeProvider
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m resultModel) render() string {
	if m.err != nil {
		return RenderError(m.err) + "\n"
	}
	return RenderResult(m.result, m.viewport.Width)
}

func (m resultModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	title := translationStyle.Render(m.heading)
	content := borderStyle.Width(m.width - 2).Render(m.viewport.View())
	status := fmt.Sprintf(" %d keyword(s)    n/enter new prompt  p provider  ↑/↓ scroll  q quit", len(m.result.Keywords))
	return title + "\n" + content + "\n" + statusBarStyle.Width(m.width).Render(status)
}

// RunResultView shows a result (or the error that replaced it) full-screen and
// returns what the user wants to do next.
func RunResultView(heading string, res model.AnalysisResult, dispatchErr error) (Action, error) {
	m := resultModel{heading: heading, result: res, err: dispatchErr}

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return ActionQuit, err
	}
	return final.(resultModel).action, nil
}
