package usecases

import (
	"context"

	"userbot/internal/domain/plugin"
)

type mockHost struct {
	plugin.Host

	edits    []string
	chatRefs []string

	GetChatFunc            func(ctx context.Context, ref string) (*plugin.ChatInfo, error)
	GetChatMemberFunc      func(ctx context.Context, chatID, userID int64) (*plugin.ChatMember, error)
	GetChatMemberCountFunc func(ctx context.Context, chatID int64) (int, error)
}

func (m *mockHost) Edit(_ context.Context, text string) error {
	m.edits = append(m.edits, text)
	return nil
}

func (m *mockHost) GetChat(ctx context.Context, ref string) (*plugin.ChatInfo, error) {
	m.chatRefs = append(m.chatRefs, ref)
	if m.GetChatFunc != nil {
		return m.GetChatFunc(ctx, ref)
	}
	return nil, plugin.ErrNotFound
}

func (m *mockHost) GetChatMember(ctx context.Context, chatID, userID int64) (*plugin.ChatMember, error) {
	if m.GetChatMemberFunc != nil {
		return m.GetChatMemberFunc(ctx, chatID, userID)
	}
	return nil, plugin.ErrNotFound
}

func (m *mockHost) GetChatMemberCount(ctx context.Context, chatID int64) (int, error) {
	if m.GetChatMemberCountFunc != nil {
		return m.GetChatMemberCountFunc(ctx, chatID)
	}
	return 0, plugin.ErrNotFound
}
