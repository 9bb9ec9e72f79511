package tui

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/articlewriter/internal/article"
	"github.com/csheth/articlewriter/internal/editor"
	"github.com/csheth/articlewriter/internal/llm"
	"github.com/csheth/articlewriter/internal/reveal"
)

// Config wires runtime options into the TUI program.
type Config struct {
	// LLM may be nil; Submit and Optimize then report a missing backend.
	LLM          llm.Client
	Animation    reveal.Options
	EditorWidth  int
	EditorHeight int
	Logger       *slog.Logger
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	return newModel(config)
}

type model struct {
	config Config
	logger *slog.Logger
	keys   keyMap

	title    textinput.Model
	editor   *editor.Model
	animator *reveal.Animator
	spinner  spinner.Model
	help     help.Model
	layout   pageLayout
	jobs     *jobBus
	focus    focusArea

	generating bool
	optimizing bool
	alert      string
	alertIsErr bool
}

func newModel(config Config) *model {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	layout := newPageLayout(config.EditorWidth, config.EditorHeight)

	title := textinput.New()
	title.Placeholder = "Enter article title"
	title.CharLimit = titleCharLimit
	title.Width = layout.titleWidth
	title.Focus()

	ed := editor.New(editor.Config{
		Width:       layout.editorWidth,
		Height:      layout.editorHeight,
		Placeholder: "Generated HTML lands here. Edit freely once it has finished typing.",
	})

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &model{
		config:   config,
		logger:   logger,
		keys:     newKeyMap(),
		title:    title,
		editor:   ed,
		animator: reveal.New(ed, config.Animation),
		spinner:  spin,
		help:     help.New(),
		layout:   layout,
		jobs:     newJobBus(logger),
		focus:    focusTitle,
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.editor.Update(msg)
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.title.Width = m.layout.titleWidth
		m.editor.SetSize(m.layout.editorWidth, m.layout.editorHeight)
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case jobResultEnvelope:
		m.jobs.Finish(msg.Snapshot)
		return m.Update(msg.Payload)
	case articleResultMsg:
		return m, m.handleArticleResult(msg)
	case reveal.TickMsg:
		return m, m.animator.Update(msg)
	case reveal.DoneMsg:
		if msg.SessionID == m.animator.SessionID() {
			m.editor.Unlock()
			m.logger.Debug("reveal finished", "session", msg.SessionID, "kind", msg.Kind)
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	cmds = append(cmds, cmd)
	cmds = append(cmds, m.editor.Update(msg))
	return m, tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.animator.Cancel()
		return tea.Quit
	case key.Matches(msg, m.keys.Skip):
		if m.animator.Active() {
			return m.animator.Skip()
		}
		m.alert = ""
		return nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case msg.Type == tea.KeyEnter && m.focus == focusTitle:
		return m.submit()
	case key.Matches(msg, m.keys.Optimize):
		return m.optimize()
	case key.Matches(msg, m.keys.SwitchFocus):
		return m.toggleFocus()
	case key.Matches(msg, m.keys.TogglePane):
		m.editor.ToggleMode()
		return nil
	}

	if action, ok := m.toolbarAction(msg); ok {
		if !m.editor.Apply(action) {
			return nil
		}
		if m.focus != focusEditor {
			return m.toggleFocus()
		}
		return nil
	}

	if m.focus == focusTitle {
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		return cmd
	}
	return m.editor.Update(msg)
}

func (m *model) toolbarAction(msg tea.KeyMsg) (editor.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Bold):
		return editor.ActionBold, true
	case key.Matches(msg, m.keys.Italic):
		return editor.ActionItalic, true
	case key.Matches(msg, m.keys.BulletList):
		return editor.ActionBulletList, true
	case key.Matches(msg, m.keys.NumberedList):
		return editor.ActionNumberedList, true
	}
	return 0, false
}

func (m *model) toggleFocus() tea.Cmd {
	if m.focus == focusTitle {
		m.focus = focusEditor
		m.title.Blur()
		return m.editor.Focus()
	}
	m.focus = focusTitle
	m.editor.Blur()
	return m.title.Focus()
}

// submit validates the title and starts a generation job.
func (m *model) submit() tea.Cmd {
	if m.submitDisabled() {
		return nil
	}
	prompt, err := llm.BuildGenerationPrompt(m.title.Value())
	if err != nil {
		m.showAlert(validationAlert(err), false)
		return nil
	}
	return m.startJob(jobKindGenerate, prompt)
}

// optimize rewrites the current editor content. A running reveal is
// completed first so the prompt sees the whole article.
func (m *model) optimize() tea.Cmd {
	if m.generating || m.optimizing {
		return nil
	}
	skip := m.animator.Skip()
	prompt, err := llm.BuildOptimizationPrompt(m.editor.Content())
	if err != nil {
		m.showAlert(validationAlert(err), false)
		return skip
	}
	return tea.Batch(skip, m.startJob(jobKindOptimize, prompt))
}

func (m *model) startJob(kind jobKind, prompt string) tea.Cmd {
	if m.config.LLM == nil {
		m.showAlert(alertNoBackend, true)
		return nil
	}
	switch kind {
	case jobKindGenerate:
		m.generating = true
	case jobKindOptimize:
		m.optimizing = true
	}
	m.alert = ""
	m.logger.Info("request started", "kind", kind, "backend", m.config.LLM.Name(), "prompt_chars", len(prompt))
	return tea.Batch(m.jobs.Start(kind, articleJob(kind, m.config.LLM, prompt)), m.spinner.Tick)
}

func (m *model) handleArticleResult(msg articleResultMsg) tea.Cmd {
	switch msg.kind {
	case jobKindGenerate:
		m.generating = false
	case jobKindOptimize:
		m.optimizing = false
	}

	if msg.err != nil {
		m.logger.Error("request failed", "kind", msg.kind, "err", msg.err)
		m.showAlert(failureAlert(msg.kind), true)
		return nil
	}
	html, err := article.Normalize(msg.text)
	if err != nil {
		m.logger.Error("response unusable", "kind", msg.kind, "err", err)
		m.showAlert(failureAlert(msg.kind), true)
		return nil
	}

	m.editor.Lock()
	if msg.kind == jobKindOptimize {
		return m.animator.EraseAndRetype(html)
	}
	return m.animator.Type(html)
}

// validationAlert maps a rejected input to its user-facing message.
func validationAlert(err error) string {
	var v *llm.ValidationError
	if !errors.As(err, &v) {
		return err.Error()
	}
	switch v.Field {
	case llm.FieldTitle:
		return alertEmptyTitle
	case llm.FieldContent:
		return alertEmptyContent
	default:
		return err.Error()
	}
}

func (m *model) showAlert(text string, isErr bool) {
	m.alert = text
	m.alertIsErr = isErr
}

func (m *model) busy() bool {
	return m.generating || m.optimizing
}

func (m *model) submitDisabled() bool {
	return m.busy()
}

func (m *model) optimizeDisabled() bool {
	return m.busy() || strings.TrimSpace(m.editor.Content()) == ""
}

func (m *model) submitLabel() string {
	if m.generating {
		return labelGenerating
	}
	return labelSubmit
}

func (m *model) optimizeLabel() string {
	if m.optimizing {
		return labelOptimizing
	}
	return labelOptimize
}

func (m *model) showTitleHint() bool {
	return strings.TrimSpace(m.title.Value()) == ""
}
