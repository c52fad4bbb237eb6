package usecases

import (
	"context"

	"userbot/internal/domain/plugin"
)

type mockStore struct {
	data map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string) error
	DeleteFunc func(ctx context.Context, key string) error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	v, ok := m.data[key]
	if !ok {
		return "", plugin.ErrNotFound
	}
	return v, nil
}

func (m *mockStore) Set(ctx context.Context, key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	m.data[key] = value
	return nil
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	delete(m.data, key)
	return nil
}

type forwardCall struct {
	messageID int64
	toChatID  int64
}

type mockHost struct {
	plugin.Host

	edits    []string
	forwards []forwardCall
	deleted  int

	ForwardFunc func(ctx context.Context, msg *plugin.Message, toChatID int64) error
}

func (m *mockHost) Edit(_ context.Context, text string) error {
	m.edits = append(m.edits, text)
	return nil
}

func (m *mockHost) Delete(context.Context) error {
	m.deleted++
	return nil
}

func (m *mockHost) Forward(ctx context.Context, msg *plugin.Message, toChatID int64) error {
	m.forwards = append(m.forwards, forwardCall{msg.ID, toChatID})
	if m.ForwardFunc != nil {
		return m.ForwardFunc(ctx, msg, toChatID)
	}
	return nil
}
