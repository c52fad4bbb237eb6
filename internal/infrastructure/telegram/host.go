package telegram

import (
	"context"
	"errors"
	"fmt"

	"userbot/internal/domain/plugin"
	"userbot/internal/shared/logger"
)

// botAPI is the part of BotService a ChatHost needs.
type botAPI interface {
	SendMessage(ctx context.Context, chatID int64, text string, replyTo int64) (*Message, error)
	SendMessagePlain(ctx context.Context, chatID int64, text string, replyTo int64) (*Message, error)
	EditMessageText(ctx context.Context, chatID, messageID int64, text string) error
	EditMessageTextPlain(ctx context.Context, chatID, messageID int64, text string) error
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
	ForwardMessage(ctx context.Context, toChatID, fromChatID, messageID int64) (*Message, error)
	SendFile(ctx context.Context, method string, chatID int64, file InputFile, caption string, replyTo int64) (*Message, error)
	GetChat(ctx context.Context, chatRef string) (*ChatFullInfo, error)
	GetChatMember(ctx context.Context, chatID, userID int64) (*ChatMember, error)
	GetChatMemberCount(ctx context.Context, chatID int64) (int, error)
}

var _ botAPI = (*BotService)(nil)

// ChatHost performs the chat side of one command invocation. A bot cannot
// edit the invoking message, so the first Edit posts a reply and later
// edits rewrite that reply.
type ChatHost struct {
	bot    botAPI
	chatID int64
	cmdID  int64
	logger logger.Interface

	// responses are the reply messages, one per chunk of the current text.
	responses []int64
}

var _ plugin.Host = (*ChatHost)(nil)

func NewChatHost(bot botAPI, chatID, commandMessageID int64, logger logger.Interface) *ChatHost {
	return &ChatHost{
		bot:    bot,
		chatID: chatID,
		cmdID:  commandMessageID,
		logger: logger,
	}
}

func (h *ChatHost) Edit(ctx context.Context, text string) error {
	chunks := splitMessage(text, maxMessageLength)

	for i, chunk := range chunks {
		if i < len(h.responses) {
			if err := h.edit(ctx, h.responses[i], chunk); err != nil {
				return err
			}
			continue
		}
		msg, err := h.send(ctx, chunk)
		if err != nil {
			return err
		}
		h.responses = append(h.responses, msg.MessageID)
	}

	// a shorter text leaves surplus replies behind
	for len(h.responses) > len(chunks) {
		last := h.responses[len(h.responses)-1]
		if err := h.bot.DeleteMessage(ctx, h.chatID, last); err != nil {
			h.logger.Warnw("failed to delete surplus reply", "message_id", last, "error", err)
		}
		h.responses = h.responses[:len(h.responses)-1]
	}
	return nil
}

// send falls back to plain text when the Markdown is rejected.
func (h *ChatHost) send(ctx context.Context, text string) (*Message, error) {
	msg, err := h.bot.SendMessage(ctx, h.chatID, text, h.cmdID)
	if isParseError(err) {
		h.logger.Debugw("markdown rejected, sending plain text", "error", err)
		msg, err = h.bot.SendMessagePlain(ctx, h.chatID, text, h.cmdID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to send reply: %w", err)
	}
	return msg, nil
}

func (h *ChatHost) edit(ctx context.Context, messageID int64, text string) error {
	err := h.bot.EditMessageText(ctx, h.chatID, messageID, text)
	if isParseError(err) {
		h.logger.Debugw("markdown rejected, editing as plain text", "error", err)
		err = h.bot.EditMessageTextPlain(ctx, h.chatID, messageID, text)
	}
	if err != nil && !isNotModified(err) {
		return fmt.Errorf("failed to edit reply: %w", err)
	}
	return nil
}

// Delete removes the replies and, where the bot may, the command message.
func (h *ChatHost) Delete(ctx context.Context) error {
	var errs []error
	for _, id := range h.responses {
		if err := h.bot.DeleteMessage(ctx, h.chatID, id); err != nil {
			errs = append(errs, err)
		}
	}
	h.responses = nil

	if err := h.bot.DeleteMessage(ctx, h.chatID, h.cmdID); err != nil {
		h.logger.Debugw("command message not deleted", "message_id", h.cmdID, "error", err)
	}
	return errors.Join(errs...)
}

func (h *ChatHost) Forward(ctx context.Context, msg *plugin.Message, toChatID int64) error {
	_, err := h.bot.ForwardMessage(ctx, toChatID, msg.Chat.ID, msg.ID)
	return err
}

func (h *ChatHost) SendMedia(ctx context.Context, media plugin.Media) error {
	method, field := "sendPhoto", "photo"
	if media.Kind == plugin.MediaVideo {
		method, field = "sendVideo", "video"
	}

	_, err := h.bot.SendFile(ctx, method, h.chatID, InputFile{
		Field:    field,
		FileName: media.FileName,
		Data:     media.Data,
	}, media.Caption, h.cmdID)
	return err
}

func (h *ChatHost) GetChat(ctx context.Context, ref string) (*plugin.ChatInfo, error) {
	chat, err := h.bot.GetChat(ctx, ref)
	if err != nil {
		return nil, err
	}
	return toPluginChatInfo(chat), nil
}

func (h *ChatHost) GetChatMember(ctx context.Context, chatID, userID int64) (*plugin.ChatMember, error) {
	member, err := h.bot.GetChatMember(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	return toPluginChatMember(member), nil
}

func (h *ChatHost) GetChatMemberCount(ctx context.Context, chatID int64) (int, error) {
	return h.bot.GetChatMemberCount(ctx, chatID)
}
