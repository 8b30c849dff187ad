package explore

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/lexiroute/internal/model"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func providers() []Provider {
	return []Provider{
		{Kind: "deepseek", Name: "DeepSeek"},
		{Kind: "gemini", Name: "Gemini", HasKey: true},
		{Kind: "openrouter", Name: "OpenRouter"},
	}
}

func TestPicker_NavigateAndSelect(t *testing.T) {
	var m tea.Model = pickerModel{providers: providers(), chosen: -1}

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("down")) // clamped at the last entry
	m, _ = m.Update(key("k"))
	m, cmd := m.Update(key("enter"))

	assert.Equal(t, 1, m.(pickerModel).chosen)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Gemini (gemini) ✓ key")
}

func TestPicker_Quit(t *testing.T) {
	var m tea.Model = pickerModel{providers: providers(), chosen: -1}
	m, cmd := m.Update(key("q"))

	assert.Equal(t, -2, m.(pickerModel).chosen)
	assert.NotNil(t, cmd)
}

func TestInput_TypeAndSubmit(t *testing.T) {
	var m tea.Model = newInputModel([]Field{
		{Label: "Model", Value: "deepseek-chat"},
		{Label: "Prompt"},
	})

	m, _ = m.Update(key("enter")) // advance to prompt
	for _, r := range "hola" {
		m, _ = m.Update(key(string(r)))
	}
	m, cmd := m.Update(key("enter"))

	final := m.(inputModel)
	assert.True(t, final.submitted)
	assert.NotNil(t, cmd)
	assert.Equal(t, []string{"deepseek-chat", "hola"}, final.values())
}

func TestInput_QTypesIntoField(t *testing.T) {
	var m tea.Model = newInputModel([]Field{{Label: "Prompt"}})

	m, _ = m.Update(key("q"))

	final := m.(inputModel)
	assert.False(t, final.cancelled)
	assert.Equal(t, []string{"q"}, final.values())
}

func TestInput_EscCancels(t *testing.T) {
	var m tea.Model = newInputModel([]Field{{Label: "Prompt", Value: "x"}})
	m, _ = m.Update(key("esc"))

	final := m.(inputModel)
	assert.True(t, final.cancelled)
	assert.False(t, final.submitted)
}

func TestInput_SecretFieldMasked(t *testing.T) {
	m := newInputModel([]Field{{Label: "API key", Value: "sk-secret", Secret: true}})

	assert.NotContains(t, m.View(), "sk-secret")
	assert.Equal(t, []string{"sk-secret"}, m.values())
}

func TestInput_TabWraps(t *testing.T) {
	var m tea.Model = newInputModel([]Field{{Label: "A"}, {Label: "B"}})
	m, _ = m.Update(key("tab"))
	m, _ = m.Update(key("tab"))

	assert.Equal(t, 0, m.(inputModel).focus)
}

func TestLoader_DispatchResult(t *testing.T) {
	want := model.AnalysisResult{Translation: "hi", Keywords: []model.KeywordEntry{}}
	m := loaderModel{
		label: "Gemini",
		dispatchFn: func(ctx context.Context) (model.AnalysisResult, error) {
			return want, nil
		},
	}

	msg := m.doDispatch()()
	updated, cmd := m.Update(msg)

	final := updated.(loaderModel)
	assert.True(t, final.done)
	assert.Equal(t, want, final.result)
	assert.NoError(t, final.err)
	assert.NotNil(t, cmd)
	assert.Empty(t, final.View())
}

func TestLoader_TimeoutApplied(t *testing.T) {
	m := loaderModel{
		timeout: 1,
		dispatchFn: func(ctx context.Context) (model.AnalysisResult, error) {
			<-ctx.Done()
			return model.AnalysisResult{}, ctx.Err()
		},
	}

	msg := m.doDispatch()().(dispatchDoneMsg)
	assert.ErrorIs(t, msg.err, context.DeadlineExceeded)
}

func TestLoader_CtrlCCancels(t *testing.T) {
	m := loaderModel{label: "Gemini"}
	assert.Contains(t, m.View(), "Asking Gemini")

	updated, _ := m.Update(key("ctrl+c"))
	assert.ErrorIs(t, updated.(loaderModel).err, ErrCancelled)
}

func TestResult_Actions(t *testing.T) {
	cases := map[string]Action{
		"q":     ActionQuit,
		"n":     ActionAgain,
		"enter": ActionAgain,
		"p":     ActionChangeProvider,
		"esc":   ActionChangeProvider,
	}
	for k, want := range cases {
		var m tea.Model = resultModel{action: -1}
		m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
		m, cmd := m.Update(key(k))

		assert.Equal(t, want, m.(resultModel).action, "key %q", k)
		assert.NotNil(t, cmd, "key %q", k)
	}
}

func TestResult_ShowsError(t *testing.T) {
	var m tea.Model = resultModel{heading: "DeepSeek", err: errors.New("bad key")}
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Contains(t, m.View(), "bad key")
}

func TestRenderResult(t *testing.T) {
	out := RenderResult(model.AnalysisResult{
		Translation: "the heart",
		Keywords: []model.KeywordEntry{
			{Word: "corazón", Phonetic: "/ko.ɾaˈθon/", Roots: "cor", Origin: "Latin", Meaning: "heart"},
			{Word: "bare"},
		},
	}, 80)

	for _, want := range []string{"Translation", "the heart", "Keywords", "corazón", "/ko.ɾaˈθon/", "Latin", "heart", "bare"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderResult_NoKeywords(t *testing.T) {
	out := RenderResult(model.AnalysisResult{}, 80)

	assert.Contains(t, out, "(none)")
	assert.NotContains(t, out, "Keywords")
}

func TestWordWrap(t *testing.T) {
	got := wordWrap("one two three four", 9)
	assert.Equal(t, "one two\nthree\nfour", got)
	assert.Empty(t, wordWrap("   ", 10))
	assert.False(t, strings.Contains(wordWrap("a b", 10), "\n"))
}
