// Package reveal animates an editor buffer toward a target string one rune
// per tick. Sessions are driven by tea.Tick messages and carry an explicit
// handle; starting a new session cancels the previous one, so at most one
// session ever writes to the surface.
package reveal

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

const (
	DefaultTypeInterval  = 10 * time.Millisecond
	DefaultEraseInterval = 5 * time.Millisecond
)

// Surface is the part of the editor widget the animator writes to.
type Surface interface {
	Content() string
	SetContent(string)
	ScrollToEnd()
}

// Phase is the state of an animation session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseErasing
	PhaseTyping
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseErasing:
		return "erasing"
	case PhaseTyping:
		return "typing"
	case PhaseDone:
		return "done"
	default:
		return "idle"
	}
}

// Kind tells which animation a session runs.
type Kind int

const (
	KindTyping Kind = iota
	KindEraseRetype
)

// Options tunes tick pacing. Zero values fall back to the defaults.
type Options struct {
	TypeInterval  time.Duration
	EraseInterval time.Duration
}

// TickMsg advances the session named by SessionID.
type TickMsg struct {
	SessionID string
}

// DoneMsg is emitted once when a session reaches PhaseDone.
type DoneMsg struct {
	SessionID string
	Kind      Kind
}

type session struct {
	id     string
	kind   Kind
	phase  Phase
	target []rune
	// cursor counts runes currently visible from target while typing, or
	// runes left to erase while erasing.
	cursor int
}

// Animator owns at most one active session against a single surface.
type Animator struct {
	surface Surface
	opts    Options
	current *session
}

// New returns an idle animator bound to surface.
func New(surface Surface, opts Options) *Animator {
	if opts.TypeInterval <= 0 {
		opts.TypeInterval = DefaultTypeInterval
	}
	if opts.EraseInterval <= 0 {
		opts.EraseInterval = DefaultEraseInterval
	}
	return &Animator{surface: surface, opts: opts}
}

// Type clears the surface and reveals target one rune per tick.
func (a *Animator) Type(target string) tea.Cmd {
	s := a.begin(KindTyping, target)
	s.phase = PhaseTyping
	a.surface.SetContent("")
	if len(s.target) == 0 {
		return a.finish(s)
	}
	return a.schedule(s, a.opts.TypeInterval)
}

// EraseAndRetype removes the current content one rune per tick from the end,
// then types target. An empty surface skips straight to typing.
func (a *Animator) EraseAndRetype(target string) tea.Cmd {
	s := a.begin(KindEraseRetype, target)
	s.cursor = len([]rune(a.surface.Content()))
	if s.cursor == 0 {
		s.phase = PhaseTyping
		if len(s.target) == 0 {
			return a.finish(s)
		}
		return a.schedule(s, a.opts.TypeInterval)
	}
	s.phase = PhaseErasing
	return a.schedule(s, a.opts.EraseInterval)
}

// Update advances the active session. Ticks for any other session are
// dropped and yield no command.
func (a *Animator) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(TickMsg)
	if !ok {
		return nil
	}
	s := a.current
	if s == nil || s.id != tick.SessionID || s.phase == PhaseDone {
		return nil
	}
	switch s.phase {
	case PhaseErasing:
		runes := []rune(a.surface.Content())
		if s.cursor > len(runes) {
			s.cursor = len(runes)
		}
		if s.cursor > 0 {
			s.cursor--
		}
		a.surface.SetContent(string(runes[:s.cursor]))
		if s.cursor > 0 {
			return a.schedule(s, a.opts.EraseInterval)
		}
		s.phase = PhaseTyping
		if len(s.target) == 0 {
			return a.finish(s)
		}
		return a.schedule(s, a.opts.TypeInterval)
	case PhaseTyping:
		s.cursor++
		a.surface.SetContent(string(s.target[:s.cursor]))
		a.surface.ScrollToEnd()
		if s.cursor >= len(s.target) {
			return a.finish(s)
		}
		return a.schedule(s, a.opts.TypeInterval)
	}
	return nil
}

// Skip completes the active session immediately with its final content.
func (a *Animator) Skip() tea.Cmd {
	s := a.current
	if s == nil || s.phase == PhaseDone {
		return nil
	}
	a.surface.SetContent(string(s.target))
	a.surface.ScrollToEnd()
	return a.finish(s)
}

// Cancel stops the active session, leaving the surface as it is.
func (a *Animator) Cancel() {
	a.current = nil
}

// Active reports whether a session is still writing to the surface.
func (a *Animator) Active() bool {
	return a.current != nil && a.current.phase != PhaseDone
}

// Phase reports the active session's phase, PhaseIdle when there is none.
func (a *Animator) Phase() Phase {
	if a.current == nil {
		return PhaseIdle
	}
	return a.current.phase
}

// SessionID returns the handle of the current session, or "".
func (a *Animator) SessionID() string {
	if a.current == nil {
		return ""
	}
	return a.current.id
}

// Progress returns how many target runes are visible and the target length.
func (a *Animator) Progress() (int, int) {
	s := a.current
	if s == nil {
		return 0, 0
	}
	switch s.phase {
	case PhaseTyping:
		return s.cursor, len(s.target)
	case PhaseDone:
		return len(s.target), len(s.target)
	default:
		return 0, len(s.target)
	}
}

func (a *Animator) begin(kind Kind, target string) *session {
	s := &session{
		id:     uuid.NewString(),
		kind:   kind,
		phase:  PhaseIdle,
		target: []rune(target),
	}
	a.current = s
	return s
}

func (a *Animator) schedule(s *session, every time.Duration) tea.Cmd {
	id := s.id
	return tea.Tick(every, func(time.Time) tea.Msg {
		return TickMsg{SessionID: id}
	})
}

func (a *Animator) finish(s *session) tea.Cmd {
	s.phase = PhaseDone
	s.cursor = len(s.target)
	done := DoneMsg{SessionID: s.id, Kind: s.kind}
	return func() tea.Msg { return done }
}
