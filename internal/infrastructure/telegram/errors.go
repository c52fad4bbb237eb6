package telegram

import (
	"errors"
	"fmt"
	"strings"

	"userbot/internal/domain/plugin"
)

// APIError represents a structured Telegram Bot API error response.
// It matches plugin.ErrRejected and, depending on the description, the more
// specific plugin refusal errors.
type APIError struct {
	Method      string
	ErrorCode   int    // e.g. 400, 403, 429
	Description string
	RetryAfter  int // seconds, only for 429
}

func (e *APIError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("telegram API error %d: %s (retry_after=%ds)", e.ErrorCode, e.Description, e.RetryAfter)
	}
	return fmt.Sprintf("telegram API error %d: %s", e.ErrorCode, e.Description)
}

var refusalPatterns = []struct {
	target   error
	patterns []string
}{
	{plugin.ErrNotFound, []string{"chat not found", "user not found", "message to forward not found", "participant_id_invalid"}},
	{plugin.ErrChannelPrivate, []string{"channel_private", "member of the channel chat"}},
	{plugin.ErrNotParticipant, []string{"user_not_participant", "member of the group chat", "member of the supergroup chat", "bot was kicked"}},
	{plugin.ErrWriteForbidden, []string{"chat_write_forbidden", "not enough rights", "have no rights to send"}},
}

func (e *APIError) Is(target error) bool {
	if target == plugin.ErrRejected {
		return true
	}
	desc := strings.ToLower(e.Description)
	for _, r := range refusalPatterns {
		if r.target != target {
			continue
		}
		for _, p := range r.patterns {
			if strings.Contains(desc, p) {
				return true
			}
		}
	}
	return false
}

// IsRetryAfter returns true if the error is a 429 Too Many Requests with retry_after.
func IsRetryAfter(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode == 429 && apiErr.RetryAfter > 0
	}
	return false
}

// GetRetryAfter extracts the retry_after seconds from a 429 error.
func GetRetryAfter(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.RetryAfter
	}
	return 0
}

// isNotModified reports an edit that would not change the message.
func isNotModified(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && strings.Contains(apiErr.Description, "message is not modified")
}

// isParseError reports Markdown the API could not parse.
func isParseError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && strings.Contains(apiErr.Description, "can't parse entities")
}

// isUnauthorized reports a revoked or invalid token.
func isUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == 401
}
