package telegram

import (
	"context"

	"userbot/internal/domain/plugin"
	"userbot/internal/shared/logger"
)

// UpdateHandler defines the interface for handling Telegram updates
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update *Update) error
}

// CommandDispatcher routes a chat message to a command handler.
type CommandDispatcher interface {
	Dispatch(ctx context.Context, msg *plugin.Message, host plugin.Host) bool
}

// CommandUpdateHandler turns message updates into command invocations.
type CommandUpdateHandler struct {
	bot        botAPI
	dispatcher CommandDispatcher
	logger     logger.Interface
}

var _ UpdateHandler = (*CommandUpdateHandler)(nil)

func NewCommandUpdateHandler(bot *BotService, dispatcher CommandDispatcher, logger logger.Interface) *CommandUpdateHandler {
	return &CommandUpdateHandler{
		bot:        bot,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (h *CommandUpdateHandler) HandleUpdate(ctx context.Context, update *Update) error {
	tgMsg := update.EffectiveMessage()
	if tgMsg == nil || tgMsg.Chat == nil {
		return nil
	}

	msg := toPluginMessage(tgMsg)
	host := NewChatHost(h.bot, tgMsg.Chat.ID, tgMsg.MessageID, h.logger)

	if h.dispatcher.Dispatch(ctx, msg, host) {
		h.logger.Debugw("update dispatched",
			"update_id", update.UpdateID,
			"chat_id", tgMsg.Chat.ID,
		)
	}
	return nil
}
