package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type focusArea int

const (
	focusTitle focusArea = iota
	focusEditor
)

const (
	heroHeadline = "AI Article Writer"
	heroTagline  = "Type a title, let the model draft it, then polish it in place."
)

const (
	alertEmptyTitle     = "Please enter a title!"
	alertEmptyContent   = "No content to optimize!"
	alertGenerateFailed = "Error generating article. Please try again."
	alertOptimizeFailed = "Error optimizing article. Please try again."
	alertNoBackend      = "No generation backend configured. Set GOOGLE_API_KEY or pick another --provider."
	titleHint           = "Please enter a title to generate an article."
)

const (
	labelSubmit     = "Submit"
	labelGenerating = "Generating..."
	labelOptimize   = "Optimize"
	labelOptimizing = "Optimizing..."
)

const (
	minEditorWidth          = 40
	editorHorizontalPadding = 4
	titleCharLimit          = 200
)

type keyMap struct {
	Submit       key.Binding
	Optimize     key.Binding
	SwitchFocus  key.Binding
	TogglePane   key.Binding
	Bold         key.Binding
	Italic       key.Binding
	BulletList   key.Binding
	NumberedList key.Binding
	Skip         key.Binding
	Quit         key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit:       key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("enter/ctrl+g", "submit")),
		Optimize:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "optimize")),
		SwitchFocus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "title/editor")),
		TogglePane:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "html/preview")),
		Bold:         key.NewBinding(key.WithKeys("alt+b"), key.WithHelp("alt+b", "bold")),
		Italic:       key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")),
		BulletList:   key.NewBinding(key.WithKeys("alt+l"), key.WithHelp("alt+l", "bullets")),
		NumberedList: key.NewBinding(key.WithKeys("alt+n"), key.WithHelp("alt+n", "numbers")),
		Skip:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip/dismiss")),
		Quit:         key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Optimize, k.SwitchFocus, k.TogglePane, k.Skip, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Optimize, k.Skip},
		{k.SwitchFocus, k.TogglePane, k.Quit},
		{k.Bold, k.Italic, k.BulletList, k.NumberedList},
	}
}

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	heroAccentColor        = lipgloss.Color("#ff8c00")
	heroEmberColor         = lipgloss.Color("#2b1400")
	heroTextColor          = lipgloss.Color("#fff4d0")
	heroSecondaryTextColor = lipgloss.Color("#ffb347")

	heroBoxStyle        = lipgloss.NewStyle().Bold(true).Border(lipgloss.RoundedBorder()).BorderForeground(heroAccentColor).Foreground(heroTextColor).Background(heroEmberColor).Padding(0, 2)
	taglineStyle        = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	statusBarStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 2).MarginRight(2)
	buttonDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#56526e")).Background(lipgloss.Color("#1f1d2e")).Padding(0, 2).MarginRight(2)
	alertBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("9")).Padding(0, 1)
	focusedLabelStyle   = sectionHeaderStyle.Copy().Underline(true)
)
