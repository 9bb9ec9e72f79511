package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/articlewriter/internal/llm"
)

// articleResultMsg carries a backend reply for a generate or optimize job.
type articleResultMsg struct {
	kind jobKind
	text string
	err  error
}

func articleJob(kind jobKind, client llm.Client, prompt string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		text, err := client.Generate(ctx, prompt)
		return articleResultMsg{kind: kind, text: text, err: err}, err
	}
}

func failureAlert(kind jobKind) string {
	if kind == jobKindOptimize {
		return alertOptimizeFailed
	}
	return alertGenerateFailed
}
