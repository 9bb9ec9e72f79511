package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestJobBusRecordsLifecycle(t *testing.T) {
	bus := newJobBus(slog.New(slog.DiscardHandler))
	cmd := bus.Start(jobKindGenerate, func(context.Context) (tea.Msg, error) {
		return "payload", nil
	})

	running, ok := bus.Latest(jobKindGenerate)
	if !ok || running.Status != jobStatusRunning {
		t.Fatalf("expected running snapshot, got %+v", running)
	}
	if !strings.HasPrefix(running.ID, "generate-") {
		t.Fatalf("unexpected id %q", running.ID)
	}

	envelope, ok := cmd().(jobResultEnvelope)
	if !ok {
		t.Fatal("expected jobResultEnvelope")
	}
	if envelope.Payload != "payload" || envelope.Snapshot.Status != jobStatusSucceeded {
		t.Fatalf("unexpected envelope %+v", envelope)
	}
	bus.Finish(envelope.Snapshot)
	done, _ := bus.Latest(jobKindGenerate)
	if done.Status != jobStatusSucceeded || done.ID != running.ID {
		t.Fatalf("snapshot not recorded: %+v", done)
	}
}

func TestJobBusFailureAndSupersededResults(t *testing.T) {
	bus := newJobBus(slog.New(slog.DiscardHandler))
	first := bus.Start(jobKindOptimize, func(context.Context) (tea.Msg, error) {
		return nil, errors.New("nope")
	})
	second := bus.Start(jobKindOptimize, func(context.Context) (tea.Msg, error) {
		return nil, nil
	})

	stale := first().(jobResultEnvelope)
	if stale.Snapshot.Status != jobStatusFailed || stale.Snapshot.Err != "nope" {
		t.Fatalf("unexpected failure snapshot %+v", stale.Snapshot)
	}
	bus.Finish(stale.Snapshot)
	latest, _ := bus.Latest(jobKindOptimize)
	if latest.Status != jobStatusRunning {
		t.Fatalf("stale result replaced newer job: %+v", latest)
	}

	bus.Finish(second().(jobResultEnvelope).Snapshot)
	latest, _ = bus.Latest(jobKindOptimize)
	if latest.Status != jobStatusSucceeded {
		t.Fatalf("expected success, got %+v", latest)
	}
	if badge := latest.Badge(); !strings.HasPrefix(badge, "optimize ") {
		t.Fatalf("unexpected badge %q", badge)
	}
}
