package handlers

import (
	"context"

	"userbot/internal/application/subscription/usecases"
)

type mockInspector struct {
	executeFunc func(ctx context.Context, text string) (*usecases.InspectResult, error)
	texts       []string
}

func (m *mockInspector) Execute(ctx context.Context, text string) (*usecases.InspectResult, error) {
	m.texts = append(m.texts, text)
	if m.executeFunc != nil {
		return m.executeFunc(ctx, text)
	}
	return &usecases.InspectResult{}, nil
}

type mockBotStatus struct {
	running bool
}

func (m *mockBotStatus) IsRunning() bool {
	return m.running
}
