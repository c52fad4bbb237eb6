package plugin

import (
	"context"
	"sync"
	"time"
)

type mockHost struct {
	mu    sync.Mutex
	edits []string

	EditFunc               func(ctx context.Context, text string) error
	DeleteFunc             func(ctx context.Context) error
	ForwardFunc            func(ctx context.Context, msg *Message, toChatID int64) error
	SendMediaFunc          func(ctx context.Context, media Media) error
	GetChatFunc            func(ctx context.Context, ref string) (*ChatInfo, error)
	GetChatMemberFunc      func(ctx context.Context, chatID, userID int64) (*ChatMember, error)
	GetChatMemberCountFunc func(ctx context.Context, chatID int64) (int, error)
}

func (m *mockHost) Edit(ctx context.Context, text string) error {
	m.mu.Lock()
	m.edits = append(m.edits, text)
	m.mu.Unlock()
	if m.EditFunc != nil {
		return m.EditFunc(ctx, text)
	}
	return nil
}

func (m *mockHost) Delete(ctx context.Context) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx)
	}
	return nil
}

func (m *mockHost) Forward(ctx context.Context, msg *Message, toChatID int64) error {
	if m.ForwardFunc != nil {
		return m.ForwardFunc(ctx, msg, toChatID)
	}
	return nil
}

func (m *mockHost) SendMedia(ctx context.Context, media Media) error {
	if m.SendMediaFunc != nil {
		return m.SendMediaFunc(ctx, media)
	}
	return nil
}

func (m *mockHost) GetChat(ctx context.Context, ref string) (*ChatInfo, error) {
	if m.GetChatFunc != nil {
		return m.GetChatFunc(ctx, ref)
	}
	return nil, ErrNotFound
}

func (m *mockHost) GetChatMember(ctx context.Context, chatID, userID int64) (*ChatMember, error) {
	if m.GetChatMemberFunc != nil {
		return m.GetChatMemberFunc(ctx, chatID, userID)
	}
	return nil, ErrNotFound
}

func (m *mockHost) GetChatMemberCount(ctx context.Context, chatID int64) (int, error) {
	if m.GetChatMemberCountFunc != nil {
		return m.GetChatMemberCountFunc(ctx, chatID)
	}
	return 0, nil
}

func (m *mockHost) Edits() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.edits...)
}

type observation struct {
	command string
	status  string
}

type mockRecorder struct {
	mu           sync.Mutex
	observations []observation
}

func (m *mockRecorder) ObserveCommand(command, status string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observations = append(m.observations, observation{command, status})
}
