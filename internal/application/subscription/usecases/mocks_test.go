package usecases

import (
	"context"
	"sync"
)

type mockSubscriptionSource struct {
	FetchPrimaryFunc func(ctx context.Context, url string) (*PrimaryResponse, error)
	FetchBodyFunc    func(ctx context.Context, url string) ([]byte, error)
}

func (m *mockSubscriptionSource) FetchPrimary(ctx context.Context, url string) (*PrimaryResponse, error) {
	if m.FetchPrimaryFunc != nil {
		return m.FetchPrimaryFunc(ctx, url)
	}
	return &PrimaryResponse{StatusCode: 200}, nil
}

func (m *mockSubscriptionSource) FetchBody(ctx context.Context, url string) ([]byte, error) {
	if m.FetchBodyFunc != nil {
		return m.FetchBodyFunc(ctx, url)
	}
	return nil, nil
}

type mockNameResolver struct {
	ResolveFunc func(ctx context.Context, url string) (string, error)
}

func (m *mockNameResolver) Resolve(ctx context.Context, url string) (string, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, url)
	}
	return "", nil
}

type mockOutcomeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *mockOutcomeRecorder) IncInspectOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}
