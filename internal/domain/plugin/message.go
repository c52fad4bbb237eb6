// Package plugin defines the command plugin model: the chat message a
// command is invoked from, the host operations a handler may perform, and the
// registry and dispatcher that route commands to handlers.
package plugin

import (
	"strings"
	"time"
)

type ChatType string

const (
	ChatTypePrivate    ChatType = "private"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSupergroup ChatType = "supergroup"
	ChatTypeChannel    ChatType = "channel"
)

// IsGroup reports whether members can be queried in the chat.
func (t ChatType) IsGroup() bool {
	return t == ChatTypeGroup || t == ChatTypeSupergroup
}

type User struct {
	ID           int64
	IsBot        bool
	FirstName    string
	LastName     string
	Username     string
	LanguageCode string
	IsPremium    bool
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Chat struct {
	ID        int64
	Type      ChatType
	Title     string
	Username  string
	FirstName string
	LastName  string
}

type Message struct {
	ID         int64
	Chat       Chat
	From       *User
	SenderChat *Chat
	Text       string
	Caption    string
	ReplyTo    *Message
	Date       time.Time
}

// Content is the caption of a media message, otherwise its text.
func (m *Message) Content() string {
	if m.Caption != "" {
		return m.Caption
	}
	return m.Text
}
