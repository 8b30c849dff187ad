package explore

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/lexiroute/internal/model"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ErrCancelled is returned when the user interrupts a running dispatch.
var ErrCancelled = errors.New("cancelled")

type dispatchDoneMsg struct {
	result model.AnalysisResult
	err    error
}

type spinnerTickMsg struct{}

type loaderModel struct {
	label      string
	dispatchFn func(ctx context.Context) (model.AnalysisResult, error)
	timeout    time.Duration
	frame      int
	result     model.AnalysisResult
	err        error
	done       bool
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doDispatch(), m.tick())
}

func (m loaderModel) doDispatch() tea.Cmd {
	dispatchFn := m.dispatchFn
	timeout := m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		res, err := dispatchFn(ctx)
		return dispatchDoneMsg{result: res, err: err}
	}
}

func (m loaderModel) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchDoneMsg:
		m.result = msg.result
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinnerTickMsg:
		if m.done {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, m.tick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = ErrCancelled
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	spinner := lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Render(spinnerFrames[m.frame])
	return fmt.Sprintf("%s Asking %s...\n", spinner, m.label)
}

// RunLoader shows a spinner while dispatchFn runs. It renders inline (no alt
// screen). A zero timeout means none.
func RunLoader(label string, timeout time.Duration, dispatchFn func(ctx context.Context) (model.AnalysisResult, error)) (model.AnalysisResult, error) {
	m := loaderModel{
		label:      label,
		dispatchFn: dispatchFn,
		timeout:    timeout,
	}
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return model.AnalysisResult{}, err
	}
	final := result.(loaderModel)
	return final.result, final.err
}
