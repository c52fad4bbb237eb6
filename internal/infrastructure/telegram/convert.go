package telegram

import (
	"time"

	"userbot/internal/domain/plugin"
)

func toPluginMessage(m *Message) *plugin.Message {
	if m == nil {
		return nil
	}
	msg := &plugin.Message{
		ID:      m.MessageID,
		Text:    m.Text,
		Caption: m.Caption,
		Date:    time.Unix(m.Date, 0),
		ReplyTo: toPluginMessage(m.ReplyToMessage),
	}
	if m.Chat != nil {
		msg.Chat = toPluginChat(m.Chat)
	}
	if m.From != nil {
		u := toPluginUser(m.From)
		msg.From = &u
	}
	if m.SenderChat != nil {
		c := toPluginChat(m.SenderChat)
		msg.SenderChat = &c
	}
	return msg
}

func toPluginChat(c *Chat) plugin.Chat {
	return plugin.Chat{
		ID:        c.ID,
		Type:      plugin.ChatType(c.Type),
		Title:     c.Title,
		Username:  c.Username,
		FirstName: c.FirstName,
		LastName:  c.LastName,
	}
}

func toPluginUser(u *User) plugin.User {
	return plugin.User{
		ID:           u.ID,
		IsBot:        u.IsBot,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		LanguageCode: u.LanguageCode,
		IsPremium:    u.IsPremium,
	}
}

func toPluginChatInfo(c *ChatFullInfo) *plugin.ChatInfo {
	return &plugin.ChatInfo{
		ID:                  c.ID,
		Type:                plugin.ChatType(c.Type),
		Title:               c.Title,
		Username:            c.Username,
		FirstName:           c.FirstName,
		LastName:            c.LastName,
		Bio:                 c.Bio,
		Description:         c.Description,
		InviteLink:          c.InviteLink,
		LinkedChatID:        c.LinkedChatID,
		SlowModeDelay:       c.SlowModeDelay,
		IsForum:             c.IsForum,
		HasProtectedContent: c.HasProtectedContent,
		HasPhoto:            c.Photo != nil,
	}
}

func toPluginChatMember(m *ChatMember) *plugin.ChatMember {
	return &plugin.ChatMember{
		Status:              plugin.MemberStatus(m.Status),
		User:                toPluginUser(&m.User),
		CanChangeInfo:       m.CanChangeInfo,
		CanDeleteMessages:   m.CanDeleteMessages,
		CanRestrictMembers:  m.CanRestrictMembers,
		CanInviteUsers:      m.CanInviteUsers,
		CanPinMessages:      m.CanPinMessages,
		CanPromoteMembers:   m.CanPromoteMembers,
		CanManageVideoChats: m.CanManageVideoChats,
	}
}
