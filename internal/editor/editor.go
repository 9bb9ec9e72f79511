// Package editor is the article editing widget: an HTML source pane backed by
// a textarea and a rendered preview pane, plus a small formatting toolbar.
package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/csheth/articlewriter/internal/render"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 12
	minWidth      = 20
	minHeight     = 3
)

// Mode selects which pane is shown.
type Mode int

const (
	ModeSource Mode = iota
	ModePreview
)

func (m Mode) String() string {
	if m == ModePreview {
		return "preview"
	}
	return "html"
}

// Config sets the initial geometry.
type Config struct {
	Width       int
	Height      int
	Placeholder string
}

var (
	paneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63"))
	lockedStyle  = paneStyle.Copy().BorderForeground(lipgloss.Color("205"))
	previewStyle = paneStyle.Copy().BorderForeground(lipgloss.Color("36"))
	tailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Model is the editor widget. It implements reveal.Surface.
type Model struct {
	area    textarea.Model
	preview viewport.Model
	mode    Mode
	width   int
	height  int
	locked  bool
	follow  bool
	open    map[Action]bool
}

// New builds an empty editor.
func New(cfg Config) *Model {
	area := textarea.New()
	area.Placeholder = cfg.Placeholder
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.MaxHeight = 0
	area.Prompt = ""

	m := &Model{
		area:    area,
		preview: viewport.New(DefaultWidth, DefaultHeight),
		open:    map[Action]bool{},
	}
	m.preview.MouseWheelEnabled = true
	m.SetSize(cfg.Width, cfg.Height)
	return m
}

// SetSize resizes both panes; non-positive values keep the defaults.
func (m *Model) SetSize(width, height int) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}
	m.width, m.height = width, height
	inner := width - paneStyle.GetHorizontalFrameSize()
	m.area.SetWidth(inner)
	m.area.SetHeight(height)
	m.preview.Width = inner
	m.preview.Height = height
}

// Content returns the HTML held by the editor.
func (m *Model) Content() string {
	return m.area.Value()
}

// SetContent replaces the editor's HTML. The cursor lands at the end.
func (m *Model) SetContent(html string) {
	m.area.SetValue(html)
	m.open = map[Action]bool{}
}

// ScrollToEnd keeps the end of the document in view until the next unlock
// or user scroll.
func (m *Model) ScrollToEnd() {
	m.follow = true
}

// Lock makes the editor read-only, e.g. while an animation owns the buffer.
func (m *Model) Lock() {
	m.locked = true
}

// Unlock restores editing and hands scrolling back to the user.
func (m *Model) Unlock() {
	m.locked = false
	m.follow = false
	m.area.CursorEnd()
}

func (m *Model) Locked() bool { return m.locked }

func (m *Model) Mode() Mode { return m.mode }

// ToggleMode switches between HTML source and rendered preview.
func (m *Model) ToggleMode() {
	if m.mode == ModeSource {
		m.mode = ModePreview
		m.refreshPreview()
		if m.follow {
			m.preview.GotoBottom()
		}
		return
	}
	m.mode = ModeSource
}

func (m *Model) Focus() tea.Cmd {
	return m.area.Focus()
}

func (m *Model) Blur() {
	m.area.Blur()
}

func (m *Model) Focused() bool {
	return m.area.Focused()
}

// Update routes input to the visible pane. Keystrokes are dropped while locked.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		if m.locked {
			return nil
		}
	}
	var cmd tea.Cmd
	if m.mode == ModePreview {
		m.refreshPreview()
		m.preview, cmd = m.preview.Update(msg)
		return cmd
	}
	m.area, cmd = m.area.Update(msg)
	return cmd
}

// View renders the active pane inside a border.
func (m *Model) View() string {
	if m.mode == ModePreview {
		m.refreshPreview()
		if m.follow {
			m.preview.GotoBottom()
		}
		return previewStyle.Render(m.preview.View())
	}
	if m.locked && m.follow {
		return lockedStyle.Render(m.tailView())
	}
	return paneStyle.Render(m.area.View())
}

func (m *Model) refreshPreview() {
	m.preview.SetContent(render.HTML(m.Content(), m.preview.Width))
}

// tailView shows the last lines of the source, wrapped to the pane width.
func (m *Model) tailView() string {
	width := m.preview.Width
	body := wrap.String(wordwrap.String(m.Content(), width), width)
	lines := strings.Split(body, "\n")
	if len(lines) > m.height {
		lines = lines[len(lines)-m.height:]
	}
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if pad := width - lipgloss.Width(line); pad > 0 {
			lines[i] = line + strings.Repeat(" ", pad)
		}
	}
	return tailStyle.Render(strings.Join(lines, "\n"))
}
