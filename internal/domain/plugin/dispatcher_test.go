package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "userbot/internal/shared/errors"
	"userbot/internal/shared/logger"
)

func newTestDispatcher(t *testing.T, allowed []int64, cmds ...Command) (*Dispatcher, *mockRecorder) {
	t.Helper()
	r := NewRegistry()
	r.MustRegister(cmds...)
	rec := &mockRecorder{}
	d := NewDispatcher(r, DispatcherConfig{Prefixes: []string{",", "-"}, AllowedUserIDs: allowed}, rec, logger.NewNopLogger())
	return d, rec
}

func textMessage(text string, fromID int64) *Message {
	return &Message{
		ID:   10,
		Chat: Chat{ID: -100, Type: ChatTypeSupergroup},
		From: &User{ID: fromID, FirstName: "Ann"},
		Text: text,
	}
}

func TestDispatcher_RunsHandler(t *testing.T) {
	var got *Context
	d, rec := newTestDispatcher(t, nil, Command{Name: "cha", Handler: func(ctx context.Context, c *Context) error {
		got = c
		return c.Host.Edit(ctx, "done")
	}})
	host := &mockHost{}

	handled := d.Dispatch(context.Background(), textMessage(",cha https://a.example", 1), host)

	require.True(t, handled)
	require.NotNil(t, got)
	assert.Equal(t, "cha", got.Command)
	assert.Equal(t, []string{"https://a.example"}, got.Parameters)
	assert.NotEmpty(t, got.InvocationID)
	assert.Equal(t, []string{"done"}, host.Edits())
	assert.Equal(t, []observation{{"cha", "ok"}}, rec.observations)
}

func TestDispatcher_IgnoresNonCommands(t *testing.T) {
	d, rec := newTestDispatcher(t, nil, Command{Name: "cha", Handler: noop})
	host := &mockHost{}

	assert.False(t, d.Dispatch(context.Background(), textMessage("hello", 1), host))
	assert.False(t, d.Dispatch(context.Background(), textMessage(",unknown", 1), host))
	assert.Empty(t, host.Edits())
	assert.Empty(t, rec.observations)
}

func TestDispatcher_AllowedUsers(t *testing.T) {
	called := 0
	d, _ := newTestDispatcher(t, []int64{42}, Command{Name: "cha", Handler: func(context.Context, *Context) error {
		called++
		return nil
	}})

	assert.False(t, d.Dispatch(context.Background(), textMessage(",cha", 7), &mockHost{}))

	anonymous := textMessage(",cha", 0)
	anonymous.From = nil
	assert.False(t, d.Dispatch(context.Background(), anonymous, &mockHost{}))

	assert.True(t, d.Dispatch(context.Background(), textMessage(",cha", 42), &mockHost{}))
	assert.Equal(t, 1, called)
}

func TestDispatcher_ReportsErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantText   string
		wantStatus string
	}{
		{
			name:       "app error message is shown",
			err:        apperrors.NewValidationError("未找到订阅链接"),
			wantText:   "未找到订阅链接",
			wantStatus: "rejected",
		},
		{
			name:       "plain error is generic",
			err:        errors.New("boom"),
			wantText:   MsgGenericError,
			wantStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec := newTestDispatcher(t, nil, Command{Name: "cha", Handler: func(context.Context, *Context) error {
				return tt.err
			}})
			host := &mockHost{}

			require.True(t, d.Dispatch(context.Background(), textMessage(",cha", 1), host))
			assert.Equal(t, []string{tt.wantText}, host.Edits())
			assert.Equal(t, []observation{{"cha", tt.wantStatus}}, rec.observations)
		})
	}
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	d, rec := newTestDispatcher(t, nil, Command{Name: "kk", Handler: func(context.Context, *Context) error {
		panic("nil map")
	}})
	host := &mockHost{}

	require.NotPanics(t, func() {
		d.Dispatch(context.Background(), textMessage("-kk", 1), host)
	})
	assert.Equal(t, []string{MsgGenericError}, host.Edits())
	assert.Equal(t, []observation{{"kk", "error"}}, rec.observations)
}

func TestDispatcher_BotUsername(t *testing.T) {
	d, _ := newTestDispatcher(t, nil, Command{Name: "cha", Handler: noop})
	d.SetBotUsername("MyBot")

	assert.True(t, d.Dispatch(context.Background(), textMessage(",cha@mybot", 1), &mockHost{}))
	assert.False(t, d.Dispatch(context.Background(), textMessage(",cha@other", 1), &mockHost{}))
}

func TestDispatcher_UsesCaption(t *testing.T) {
	called := false
	d, _ := newTestDispatcher(t, nil, Command{Name: "cha", Handler: func(context.Context, *Context) error {
		called = true
		return nil
	}})
	msg := textMessage("", 1)
	msg.Caption = ",cha"

	assert.True(t, d.Dispatch(context.Background(), msg, &mockHost{}))
	assert.True(t, called)
}
