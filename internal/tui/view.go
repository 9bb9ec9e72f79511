package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/articlewriter/internal/editor"
	"github.com/csheth/articlewriter/internal/reveal"
)

func (m *model) View() string {
	return joinNonEmpty([]string{
		m.heroView(),
		m.titlePanel(),
		m.buttonRow(),
		m.alertView(),
		m.editorPanel(),
		m.footerView(),
	})
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		heroBoxStyle.Render(heroHeadline),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) titlePanel() string {
	label := sectionHeaderStyle.Render("Title")
	if m.focus == focusTitle {
		label = focusedLabelStyle.Render("Title")
	}
	parts := []string{label, m.title.View()}
	if m.showTitleHint() {
		parts = append(parts, helperStyle.Render(titleHint))
	}
	return strings.Join(parts, "\n")
}

func (m *model) buttonRow() string {
	submit := renderButton(m.submitLabel(), m.submitDisabled())
	optimize := renderButton(m.optimizeLabel(), m.optimizeDisabled())
	row := lipgloss.JoinHorizontal(lipgloss.Center, submit, optimize)
	if m.busy() {
		row = lipgloss.JoinHorizontal(lipgloss.Center, row, m.spinner.View())
	}
	return row
}

func renderButton(label string, disabled bool) string {
	if disabled {
		return buttonDisabledStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func (m *model) alertView() string {
	if m.alert == "" {
		return ""
	}
	if m.alertIsErr {
		return alertBoxStyle.Render(errorStyle.Render(m.alert))
	}
	return alertBoxStyle.Copy().BorderForeground(lipgloss.Color("#ffd166")).Render(m.alert)
}

func (m *model) editorPanel() string {
	label := sectionHeaderStyle.Render("Article")
	if m.focus == focusEditor {
		label = focusedLabelStyle.Render("Article")
	}
	header := label
	if open := m.editor.OpenTags(); open != "" {
		header = fmt.Sprintf("%s  %s", label, helperStyle.Render("open: "+open))
	}
	return strings.Join([]string{header, m.editor.View()}, "\n")
}

func (m *model) footerView() string {
	return strings.Join([]string{m.sessionMeterView(), m.help.View(m.keys)}, "\n")
}

func (m *model) sessionMeterView() string {
	backend := "no backend"
	if m.config.LLM != nil {
		backend = m.config.LLM.Name()
	}
	stats := []string{backend, fmt.Sprintf("Pane %s", m.editor.Mode())}
	if m.animator.Active() {
		stats = append(stats, m.revealBadge())
	}
	if m.editor.Mode() == editor.ModeSource {
		stats = append(stats, fmt.Sprintf("%d chars", len([]rune(m.editor.Content()))))
	}
	for _, kind := range []jobKind{jobKindGenerate, jobKindOptimize} {
		if snapshot, ok := m.jobs.Latest(kind); ok {
			stats = append(stats, snapshot.Badge())
		}
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) revealBadge() string {
	if m.animator.Phase() == reveal.PhaseErasing {
		return "Erasing"
	}
	done, total := m.animator.Progress()
	return fmt.Sprintf("Typing %d/%d", done, total)
}
