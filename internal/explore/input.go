package explore

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field describes one value asked for by RunInput.
type Field struct {
	Label       string
	Placeholder string
	Value       string // prefilled
	Secret      bool   // mask typed characters
}

type inputModel struct {
	fields    []Field
	inputs    []textinput.Model
	focus     int
	submitted bool
	cancelled bool
}

func newInputModel(fields []Field) inputModel {
	m := inputModel{fields: fields, inputs: make([]textinput.Model, len(fields))}
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = "  "
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 4096
		ti.Width = 60
		ti.SetValue(f.Value)
		if f.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.inputs[i] = ti
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "enter":
			// Enter on the last field submits; elsewhere it advances.
			if m.focus == len(m.inputs)-1 {
				m.submitted = true
				return m, tea.Quit
			}
			return m, m.setFocus(m.focus + 1)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *inputModel) setFocus(i int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m inputModel) values() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = in.Value()
	}
	return out
}

func (m inputModel) View() string {
	s := titleStyle.Render("LexiRoute · Analyze")
	s += "\n"
	for i, f := range m.fields {
		label := labelStyle.Width(0).Render(f.Label)
		if i != m.focus {
			label = dividerStyle.Render(f.Label)
		}
		s += "  " + label + "\n" + m.inputs[i].View() + "\n\n"
	}
	s += hintStyle.Render("tab/↑/↓ move  enter next/submit  esc back")
	return s
}

// RunInput asks for every field in order. ok is false when the user backed out.
func RunInput(fields []Field) (values []string, ok bool, err error) {
	p := tea.NewProgram(newInputModel(fields))
	result, err := p.Run()
	if err != nil {
		return nil, false, err
	}
	final := result.(inputModel)
	if !final.submitted {
		return nil, false, nil
	}
	return final.values(), true, nil
}
