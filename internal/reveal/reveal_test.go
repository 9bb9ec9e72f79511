package reveal

import (
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

type recordingSurface struct {
	content string
	writes  []string
	scrolls int
}

func (s *recordingSurface) Content() string { return s.content }

func (s *recordingSurface) SetContent(v string) {
	s.content = v
	s.writes = append(s.writes, v)
}

func (s *recordingSurface) ScrollToEnd() { s.scrolls++ }

func (s *recordingSurface) lengths() []int {
	out := make([]int, 0, len(s.writes))
	for _, w := range s.writes {
		out = append(out, utf8.RuneCountInString(w))
	}
	return out
}

// pump feeds ticks for the current session until it finishes.
func pump(t *testing.T, a *Animator) int {
	t.Helper()
	ticks := 0
	for a.Active() {
		a.Update(TickMsg{SessionID: a.SessionID()})
		ticks++
		require.Less(t, ticks, 100000, "animation did not terminate")
	}
	return ticks
}

func TestTypeRevealsOneRunePerTick(t *testing.T) {
	surface := &recordingSurface{content: "stale"}
	a := New(surface, Options{})
	target := "<h1>Ocean Currents</h1><p>...</p>"

	cmd := a.Type(target)
	require.NotNil(t, cmd)
	require.Equal(t, PhaseTyping, a.Phase())
	require.Equal(t, "", surface.content, "typing starts from a cleared editor")

	ticks := pump(t, a)
	require.Equal(t, len(target), ticks)
	require.Equal(t, target, surface.content)
	require.Equal(t, PhaseDone, a.Phase())

	lengths := surface.lengths()
	require.Len(t, lengths, len(target)+1)
	for i, n := range lengths {
		require.Equal(t, i, n, "visible length must grow by exactly one per tick")
	}
	require.Equal(t, len(target), surface.scrolls)
}

func TestTypeHandlesMultibyteRunes(t *testing.T) {
	surface := &recordingSurface{}
	a := New(surface, Options{})
	target := "<p>Meeresströmungen 🌊</p>"

	a.Type(target)
	ticks := pump(t, a)
	require.Equal(t, utf8.RuneCountInString(target), ticks)
	for _, w := range surface.writes {
		require.True(t, utf8.ValidString(w), "partial write split a rune: %q", w)
	}
	require.Equal(t, target, surface.content)
}

func TestTypeEmptyTargetFinishesImmediately(t *testing.T) {
	surface := &recordingSurface{content: "old"}
	a := New(surface, Options{})

	cmd := a.Type("")
	require.NotNil(t, cmd)
	require.False(t, a.Active())
	require.Equal(t, "", surface.content)
	msg := cmd()
	done, ok := msg.(DoneMsg)
	require.True(t, ok, "expected DoneMsg, got %T", msg)
	require.Equal(t, KindTyping, done.Kind)
}

func TestEraseThenRetype(t *testing.T) {
	surface := &recordingSurface{content: "<p>old</p>"}
	a := New(surface, Options{})

	a.EraseAndRetype("<p>new</p>")
	require.Equal(t, PhaseErasing, a.Phase())

	sawEmptyMidpoint := false
	for a.Active() {
		before := a.Phase()
		a.Update(TickMsg{SessionID: a.SessionID()})
		if before == PhaseErasing && a.Phase() == PhaseTyping {
			require.Equal(t, "", surface.content)
			sawEmptyMidpoint = true
		}
	}
	require.True(t, sawEmptyMidpoint)
	require.Equal(t, "<p>new</p>", surface.content)

	want := []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	require.Equal(t, want, surface.lengths())
}

func TestEraseWritesNothingNewUntilEmpty(t *testing.T) {
	surface := &recordingSurface{content: "abc"}
	a := New(surface, Options{})
	a.EraseAndRetype("xyz")
	pump(t, a)
	require.Equal(t, []string{"ab", "a", "", "x", "xy", "xyz"}, surface.writes)
}

func TestEraseFromEmptyStartsTyping(t *testing.T) {
	surface := &recordingSurface{}
	a := New(surface, Options{})

	cmd := a.EraseAndRetype("hi")
	require.NotNil(t, cmd)
	require.Equal(t, PhaseTyping, a.Phase())
	require.Empty(t, surface.writes, "no erase ticks for empty content")

	pump(t, a)
	require.Equal(t, []string{"h", "hi"}, surface.writes)
}

func TestNewSessionCancelsPrevious(t *testing.T) {
	surface := &recordingSurface{}
	a := New(surface, Options{})

	a.Type("first article")
	first := a.SessionID()
	a.Update(TickMsg{SessionID: first})
	a.Update(TickMsg{SessionID: first})
	require.Equal(t, "fi", surface.content)

	a.Type("second")
	second := a.SessionID()
	require.NotEqual(t, first, second)

	require.Nil(t, a.Update(TickMsg{SessionID: first}), "stale ticks must be dropped")
	require.Equal(t, "", surface.content)

	pump(t, a)
	require.Equal(t, "second", surface.content)
}

func TestSkipCompletesSession(t *testing.T) {
	surface := &recordingSurface{content: "<p>old</p>"}
	a := New(surface, Options{})
	a.EraseAndRetype("<p>new</p>")
	a.Update(TickMsg{SessionID: a.SessionID()})

	cmd := a.Skip()
	require.NotNil(t, cmd)
	require.Equal(t, "<p>new</p>", surface.content)
	require.False(t, a.Active())
	require.IsType(t, DoneMsg{}, cmd())
	require.Nil(t, a.Skip(), "skipping a finished session is a no-op")
}

func TestCancelLeavesContent(t *testing.T) {
	surface := &recordingSurface{}
	a := New(surface, Options{})
	a.Type("abc")
	id := a.SessionID()
	a.Update(TickMsg{SessionID: id})
	a.Cancel()
	require.False(t, a.Active())
	require.Equal(t, PhaseIdle, a.Phase())
	require.Nil(t, a.Update(TickMsg{SessionID: id}))
	require.Equal(t, "a", surface.content)
}

func TestProgress(t *testing.T) {
	surface := &recordingSurface{content: "xy"}
	a := New(surface, Options{})
	a.EraseAndRetype("abcd")
	done, total := a.Progress()
	require.Equal(t, 0, done)
	require.Equal(t, 4, total)
	pump(t, a)
	done, total = a.Progress()
	require.Equal(t, 4, done)
	require.Equal(t, 4, total)
}

func TestScheduledTickCarriesSession(t *testing.T) {
	surface := &recordingSurface{}
	a := New(surface, Options{TypeInterval: time.Millisecond})
	cmd := a.Type("a")
	msg := cmd()
	tick, ok := msg.(TickMsg)
	require.True(t, ok, "expected TickMsg, got %T", msg)
	require.Equal(t, a.SessionID(), tick.SessionID)

	next := a.Update(tick)
	require.NotNil(t, next)
	_, isDone := next().(DoneMsg)
	require.True(t, isDone)
}

func TestUpdateIgnoresForeignMessages(t *testing.T) {
	a := New(&recordingSurface{}, Options{})
	require.Nil(t, a.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	require.Equal(t, "idle", a.Phase().String())
}
