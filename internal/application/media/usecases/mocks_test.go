package usecases

import (
	"context"
	"time"

	"userbot/internal/domain/plugin"
)

type mockStore struct {
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", plugin.ErrNotFound
	}
	return v, nil
}

func (m *mockStore) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *mockStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

type mockMediaSource struct {
	CallAPIFunc  func(ctx context.Context, url string, timeout time.Duration) (*APIResponse, error)
	DownloadFunc func(ctx context.Context, url string, timeout time.Duration) ([]byte, error)

	downloaded []string
}

func (m *mockMediaSource) CallAPI(ctx context.Context, url string, timeout time.Duration) (*APIResponse, error) {
	return m.CallAPIFunc(ctx, url, timeout)
}

func (m *mockMediaSource) Download(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	m.downloaded = append(m.downloaded, url)
	return m.DownloadFunc(ctx, url, timeout)
}

type mockHost struct {
	plugin.Host

	edits   []string
	sent    []plugin.Media
	deleted int

	SendMediaFunc func(ctx context.Context, media plugin.Media) error
}

func (m *mockHost) Edit(_ context.Context, text string) error {
	m.edits = append(m.edits, text)
	return nil
}

func (m *mockHost) Delete(context.Context) error {
	m.deleted++
	return nil
}

func (m *mockHost) SendMedia(ctx context.Context, media plugin.Media) error {
	m.sent = append(m.sent, media)
	if m.SendMediaFunc != nil {
		return m.SendMediaFunc(ctx, media)
	}
	return nil
}
