package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type jobKind string

type jobStatus string

const (
	jobKindGenerate jobKind = "generate"
	jobKindOptimize jobKind = "optimize"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

// jobBus runs blocking work off the update loop. Its bookkeeping is only
// touched from Update; runners see nothing but their context.
type jobBus struct {
	counter int64
	logger  *slog.Logger
	latest  map[jobKind]jobSnapshot
}

func newJobBus(logger *slog.Logger) *jobBus {
	return &jobBus{logger: logger, latest: map[jobKind]jobSnapshot{}}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start records the job as running and returns the command that executes it.
func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	b.latest[kind] = jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	b.logger.Debug("job started", "job", id, "kind", kind)

	logger := b.logger
	return func() tea.Msg {
		payload, err := runner(context.Background())
		snapshot := jobSnapshot{
			ID:          id,
			Kind:        kind,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		if err != nil {
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		} else {
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		logger.Info("[jobs] finished", "job", id, "kind", kind, "status", snapshot.Status, "duration", snapshot.Duration, "err", err)
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}
}

// Finish stores a completed snapshot unless a newer job of the same kind
// has started since.
func (b *jobBus) Finish(snapshot jobSnapshot) {
	if current, ok := b.latest[snapshot.Kind]; ok && current.ID != snapshot.ID {
		return
	}
	b.latest[snapshot.Kind] = snapshot
}

func (b *jobBus) Latest(kind jobKind) (jobSnapshot, bool) {
	snapshot, ok := b.latest[kind]
	return snapshot, ok
}

func (s jobSnapshot) Badge() string {
	switch s.Status {
	case jobStatusRunning:
		return fmt.Sprintf("%s running", s.Kind)
	case jobStatusFailed:
		return fmt.Sprintf("%s failed", s.Kind)
	default:
		return fmt.Sprintf("%s %s", s.Kind, s.Duration.Round(100*time.Millisecond))
	}
}
