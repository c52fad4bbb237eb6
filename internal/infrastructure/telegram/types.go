package telegram

import "encoding/json"

// Update represents a Telegram update from getUpdates or webhook
type Update struct {
	UpdateID      int64    `json:"update_id"`
	Message       *Message `json:"message,omitempty"`
	EditedMessage *Message `json:"edited_message,omitempty"`
	ChannelPost   *Message `json:"channel_post,omitempty"`
}

// EffectiveMessage is the message carried by the update, if any.
func (u *Update) EffectiveMessage() *Message {
	switch {
	case u.Message != nil:
		return u.Message
	case u.ChannelPost != nil:
		return u.ChannelPost
	default:
		return nil
	}
}

type Message struct {
	MessageID      int64    `json:"message_id"`
	From           *User    `json:"from,omitempty"`
	SenderChat     *Chat    `json:"sender_chat,omitempty"`
	Chat           *Chat    `json:"chat"`
	Date           int64    `json:"date"`
	Text           string   `json:"text,omitempty"`
	Caption        string   `json:"caption,omitempty"`
	ReplyToMessage *Message `json:"reply_to_message,omitempty"`
}

type User struct {
	ID           int64  `json:"id"`
	IsBot        bool   `json:"is_bot"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`
}

type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ChatFullInfo is the getChat result.
type ChatFullInfo struct {
	Chat
	IsForum             bool       `json:"is_forum,omitempty"`
	Bio                 string     `json:"bio,omitempty"`
	Description         string     `json:"description,omitempty"`
	InviteLink          string     `json:"invite_link,omitempty"`
	LinkedChatID        int64      `json:"linked_chat_id,omitempty"`
	SlowModeDelay       int        `json:"slow_mode_delay,omitempty"`
	HasProtectedContent bool       `json:"has_protected_content,omitempty"`
	Photo               *ChatPhoto `json:"photo,omitempty"`
}

type ChatPhoto struct {
	SmallFileID string `json:"small_file_id"`
	BigFileID   string `json:"big_file_id"`
}

type ChatMember struct {
	Status              string `json:"status"`
	User                User   `json:"user"`
	CanChangeInfo       bool   `json:"can_change_info,omitempty"`
	CanDeleteMessages   bool   `json:"can_delete_messages,omitempty"`
	CanRestrictMembers  bool   `json:"can_restrict_members,omitempty"`
	CanInviteUsers      bool   `json:"can_invite_users,omitempty"`
	CanPinMessages      bool   `json:"can_pin_messages,omitempty"`
	CanPromoteMembers   bool   `json:"can_promote_members,omitempty"`
	CanManageVideoChats bool   `json:"can_manage_video_chats,omitempty"`
}

// BotCommand represents a bot command for the command menu
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

type replyParameters struct {
	MessageID                int64 `json:"message_id"`
	AllowSendingWithoutReply bool  `json:"allow_sending_without_reply"`
}

type responseParameters struct {
	RetryAfter      int   `json:"retry_after,omitempty"`
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
}

// apiResponse is the envelope of every Bot API response.
type apiResponse struct {
	OK          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Description string              `json:"description,omitempty"`
	Parameters  *responseParameters `json:"parameters,omitempty"`
}
