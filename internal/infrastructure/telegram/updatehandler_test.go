package telegram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userbot/internal/domain/plugin"
	"userbot/internal/shared/logger"
)

func TestCommandUpdateHandler_DispatchesMessage(t *testing.T) {
	bot, calls := fakeBotAPI(t, map[string]string{
		"sendMessage": `{"ok":true,"result":{"message_id":50,"chat":{"id":-5,"type":"group"}}}`,
	})
	dispatcher := &fakeDispatcher{fn: func(ctx context.Context, msg *plugin.Message, host plugin.Host) {
		require.NoError(t, host.Edit(ctx, "pong"))
	}}
	h := NewCommandUpdateHandler(bot, dispatcher, logger.NewNopLogger())

	err := h.HandleUpdate(context.Background(), &Update{
		UpdateID: 1,
		Message: &Message{
			MessageID: 9,
			From:      &User{ID: 3, FirstName: "A"},
			Chat:      &Chat{ID: -5, Type: "group"},
			Text:      ",ping",
			ReplyToMessage: &Message{
				MessageID: 8,
				Chat:      &Chat{ID: -5, Type: "group"},
				Text:      "hello",
			},
		},
	})

	require.NoError(t, err)
	require.Len(t, dispatcher.messages, 1)
	msg := dispatcher.messages[0]
	assert.Equal(t, ",ping", msg.Text)
	assert.Equal(t, int64(3), msg.From.ID)
	assert.Equal(t, plugin.ChatType("group"), msg.Chat.Type)
	require.NotNil(t, msg.ReplyTo)
	assert.Equal(t, "hello", msg.ReplyTo.Text)

	require.Len(t, *calls, 1)
	assert.Equal(t, "sendMessage", (*calls)[0].method)
	assert.Equal(t, "pong", (*calls)[0].body["text"])
}

func TestCommandUpdateHandler_ChannelPost(t *testing.T) {
	bot, _ := fakeBotAPI(t, nil)
	dispatcher := &fakeDispatcher{}
	h := NewCommandUpdateHandler(bot, dispatcher, logger.NewNopLogger())

	err := h.HandleUpdate(context.Background(), &Update{
		UpdateID:    2,
		ChannelPost: &Message{MessageID: 1, Chat: &Chat{ID: -100, Type: "channel"}, Text: "-kk"},
	})

	require.NoError(t, err)
	require.Len(t, dispatcher.messages, 1)
	assert.Nil(t, dispatcher.messages[0].From)
}

func TestCommandUpdateHandler_IgnoresOtherUpdates(t *testing.T) {
	bot, _ := fakeBotAPI(t, nil)
	dispatcher := &fakeDispatcher{}
	h := NewCommandUpdateHandler(bot, dispatcher, logger.NewNopLogger())

	require.NoError(t, h.HandleUpdate(context.Background(), &Update{UpdateID: 3}))
	require.NoError(t, h.HandleUpdate(context.Background(), &Update{
		UpdateID:      4,
		EditedMessage: &Message{MessageID: 1, Chat: &Chat{ID: 1}},
	}))

	assert.Empty(t, dispatcher.messages)
}
