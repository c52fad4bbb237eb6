package bot

import (
	"context"

	forwardUsecases "userbot/internal/application/forward/usecases"
	profileUsecases "userbot/internal/application/profile/usecases"
	subscriptionUsecases "userbot/internal/application/subscription/usecases"
	"userbot/internal/domain/plugin"
)

type mockInspector struct {
	ExecuteFunc func(ctx context.Context, text string) (*subscriptionUsecases.InspectResult, error)
}

func (m *mockInspector) Execute(ctx context.Context, text string) (*subscriptionUsecases.InspectResult, error) {
	return m.ExecuteFunc(ctx, text)
}

type mockForwarder struct {
	got forwardUsecases.ForwardMessageCommand
}

func (m *mockForwarder) Execute(_ context.Context, _ plugin.Host, cmd forwardUsecases.ForwardMessageCommand) error {
	m.got = cmd
	return nil
}

type mockMedia struct {
	params [][]string
}

func (m *mockMedia) Execute(_ context.Context, _ plugin.Host, params []string) error {
	m.params = append(m.params, params)
	return nil
}

type mockProfiles struct {
	got profileUsecases.ShowProfileCommand
}

func (m *mockProfiles) Execute(_ context.Context, _ plugin.Host, cmd profileUsecases.ShowProfileCommand) (string, error) {
	m.got = cmd
	return "", nil
}

type mockHost struct {
	plugin.Host
	edits []string
}

func (m *mockHost) Edit(_ context.Context, text string) error {
	m.edits = append(m.edits, text)
	return nil
}
