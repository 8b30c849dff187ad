package explore

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/lexiroute/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 0, 1, 2)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)

	translationStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15"))

	wordStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	phoneticStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Width(10)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39"))
)

// RenderResult formats an analysis result for the terminal, wrapping prose at width.
func RenderResult(res model.AnalysisResult, width int) string {
	wrapWidth := max(width-12, 20)
	divider := func(label string) string {
		fill := strings.Repeat("─", max(wrapWidth-len(label), 3))
		return dividerStyle.Render(label + fill)
	}

	var b strings.Builder
	b.WriteString(divider("── Translation ") + "\n\n")
	translation := res.Translation
	if translation == "" {
		translation = "(none)"
	}
	b.WriteString(translationStyle.Render(wordWrap(translation, wrapWidth)) + "\n")

	if len(res.Keywords) == 0 {
		return b.String()
	}

	b.WriteString("\n" + divider("── Keywords ") + "\n")
	for _, kw := range res.Keywords {
		b.WriteByte('\n')
		b.WriteString(wordStyle.Render(kw.Word))
		if kw.Phonetic != "" {
			b.WriteString("  " + phoneticStyle.Render(kw.Phonetic))
		}
		b.WriteByte('\n')

		addField := func(label, value string) {
			if value == "" {
				return
			}
			b.WriteString(labelStyle.Render(label))
			b.WriteString(valueStyle.Render(wordWrap(value, wrapWidth)))
			b.WriteByte('\n')
		}
		addField("Meaning", kw.Meaning)
		addField("Roots", kw.Roots)
		addField("Origin", kw.Origin)
	}
	return b.String()
}

// RenderError formats a dispatch failure for the terminal.
func RenderError(err error) string {
	return errorStyle.Render("⚠ " + err.Error())
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
