package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	sharedConfig "userbot/internal/shared/config"
)

const parseModeMarkdown = "Markdown"

// BotService provides Telegram Bot API operations
type BotService struct {
	baseURL    string
	httpClient *http.Client

	mu          sync.RWMutex
	botUsername string // cached from getMe
}

// NewBotService creates a new Telegram bot service. It does not contact the
// API; call GetMe to verify the token.
func NewBotService(config sharedConfig.TelegramConfig) *BotService {
	base := strings.TrimRight(config.APIBaseURL, "/")
	if base == "" {
		base = "https://api.telegram.org"
	}
	return &BotService{
		baseURL: fmt.Sprintf("%s/bot%s", base, config.BotToken),
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// GetMe fetches the bot account and caches its username.
func (s *BotService) GetMe(ctx context.Context) (*User, error) {
	var me User
	if err := s.call(ctx, "getMe", nil, &me); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.botUsername = me.Username
	s.mu.Unlock()

	return &me, nil
}

// GetBotUsername returns the cached bot username
func (s *BotService) GetBotUsername() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.botUsername
}

// SetWebhook sets the webhook URL for receiving updates
func (s *BotService) SetWebhook(ctx context.Context, webhookURL, secret string) error {
	body := map[string]any{
		"url":             webhookURL,
		"allowed_updates": allowedUpdates,
	}
	if secret != "" {
		body["secret_token"] = secret
	}
	return s.call(ctx, "setWebhook", body, nil)
}

// DeleteWebhook removes the webhook
func (s *BotService) DeleteWebhook(ctx context.Context) error {
	return s.call(ctx, "deleteWebhook", nil, nil)
}

// SetMyCommands sets the list of bot commands shown in the command menu
func (s *BotService) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	return s.call(ctx, "setMyCommands", map[string]any{"commands": commands}, nil)
}

var allowedUpdates = []string{"message", "channel_post"}

// GetUpdates long-polls for updates. timeout is in seconds (0-60).
func (s *BotService) GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, error) {
	body := map[string]any{
		"timeout":         timeout,
		"allowed_updates": allowedUpdates,
	}
	if offset > 0 {
		body["offset"] = offset
	}

	var updates []Update
	if err := s.call(ctx, "getUpdates", body, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SendMessage sends a Markdown message, as a reply when replyTo is non-zero.
func (s *BotService) SendMessage(ctx context.Context, chatID int64, text string, replyTo int64) (*Message, error) {
	return s.sendMessage(ctx, chatID, text, replyTo, parseModeMarkdown)
}

// SendMessagePlain sends a message without any formatting.
func (s *BotService) SendMessagePlain(ctx context.Context, chatID int64, text string, replyTo int64) (*Message, error) {
	return s.sendMessage(ctx, chatID, text, replyTo, "")
}

func (s *BotService) sendMessage(ctx context.Context, chatID int64, text string, replyTo int64, parseMode string) (*Message, error) {
	body := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if parseMode != "" {
		body["parse_mode"] = parseMode
	}
	if replyTo != 0 {
		body["reply_parameters"] = replyParameters{MessageID: replyTo, AllowSendingWithoutReply: true}
	}

	var msg Message
	if err := s.call(ctx, "sendMessage", body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// EditMessageText edits the text of a message (Markdown format)
func (s *BotService) EditMessageText(ctx context.Context, chatID, messageID int64, text string) error {
	return s.editMessageText(ctx, chatID, messageID, text, parseModeMarkdown)
}

// EditMessageTextPlain edits the text of a message without formatting.
func (s *BotService) EditMessageTextPlain(ctx context.Context, chatID, messageID int64, text string) error {
	return s.editMessageText(ctx, chatID, messageID, text, "")
}

func (s *BotService) editMessageText(ctx context.Context, chatID, messageID int64, text, parseMode string) error {
	body := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	}
	if parseMode != "" {
		body["parse_mode"] = parseMode
	}
	return s.call(ctx, "editMessageText", body, nil)
}

func (s *BotService) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	return s.call(ctx, "deleteMessage", map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
	}, nil)
}

func (s *BotService) ForwardMessage(ctx context.Context, toChatID, fromChatID, messageID int64) (*Message, error) {
	var msg Message
	err := s.call(ctx, "forwardMessage", map[string]any{
		"chat_id":      toChatID,
		"from_chat_id": fromChatID,
		"message_id":   messageID,
	}, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// InputFile is an upload sent as multipart form data.
type InputFile struct {
	// Field is the form field, "photo" or "video".
	Field    string
	FileName string
	Data     []byte
}

// SendFile uploads a photo or video with a Markdown caption.
func (s *BotService) SendFile(ctx context.Context, method string, chatID int64, file InputFile, caption string, replyTo int64) (*Message, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"chat_id": strconv.FormatInt(chatID, 10),
	}
	if caption != "" {
		fields["caption"] = caption
		fields["parse_mode"] = parseModeMarkdown
	}
	if replyTo != 0 {
		reply, err := json.Marshal(replyParameters{MessageID: replyTo, AllowSendingWithoutReply: true})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal reply parameters: %w", err)
		}
		fields["reply_parameters"] = string(reply)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	part, err := w.CreateFormFile(file.Field, file.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.methodURL(method), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var msg Message
	if err := s.do(req, method, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetChat resolves a numeric chat id or an @username.
func (s *BotService) GetChat(ctx context.Context, chatRef string) (*ChatFullInfo, error) {
	var chat ChatFullInfo
	if err := s.call(ctx, "getChat", map[string]any{"chat_id": chatIDValue(chatRef)}, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

func (s *BotService) GetChatMember(ctx context.Context, chatID, userID int64) (*ChatMember, error) {
	var member ChatMember
	err := s.call(ctx, "getChatMember", map[string]any{
		"chat_id": chatID,
		"user_id": userID,
	}, &member)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *BotService) GetChatMemberCount(ctx context.Context, chatID int64) (int, error) {
	var count int
	if err := s.call(ctx, "getChatMemberCount", map[string]any{"chat_id": chatID}, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// chatIDValue sends numeric references as numbers.
func chatIDValue(ref string) any {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return id
	}
	return ref
}

func (s *BotService) methodURL(method string) string {
	return s.baseURL + "/" + method
}

// call posts a JSON body and decodes the result into out when non-nil.
func (s *BotService) call(ctx context.Context, method string, body map[string]any, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.methodURL(method), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return s.do(req, method, out)
}

func (s *BotService) do(req *http.Request, method string, out any) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s request: %w", method, err)
	}
	defer resp.Body.Close()

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}

	if !result.OK {
		apiErr := &APIError{
			Method:      method,
			ErrorCode:   result.ErrorCode,
			Description: result.Description,
		}
		if apiErr.ErrorCode == 0 {
			apiErr.ErrorCode = resp.StatusCode
		}
		if result.Parameters != nil {
			apiErr.RetryAfter = result.Parameters.RetryAfter
		}
		return apiErr
	}

	if out == nil || len(result.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(result.Result, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}
