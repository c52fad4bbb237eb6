// Package profile renders the user and chat summaries of the kk command.
package profile

import (
	"fmt"
	"strconv"
	"strings"

	"userbot/internal/domain/plugin"
)

// UserProfile is everything known about a user subject.
type UserProfile struct {
	User plugin.User
	// Member is the user's membership in the invoking group, if looked up.
	Member *plugin.ChatMember
	Bio    string
}

// ChatProfile is everything known about a chat subject.
type ChatProfile struct {
	Chat        plugin.ChatInfo
	MemberCount int
	// Viewer is the invoker's membership in the chat, if looked up.
	Viewer      *plugin.ChatMember
	LinkedTitle string
}

var memberStatusLabels = map[plugin.MemberStatus]string{
	plugin.MemberCreator:       "👑 群主",
	plugin.MemberAdministrator: "⭐️ 管理员",
	plugin.MemberMember:        "👤 成员",
	plugin.MemberRestricted:    "⚠️ 受限制",
	plugin.MemberLeft:          "💨 已离开",
	plugin.MemberKicked:        "❌ 被封禁",
}

var chatTypeLabels = map[plugin.ChatType]string{
	plugin.ChatTypePrivate:    "私聊",
	plugin.ChatTypeGroup:      "群组",
	plugin.ChatTypeSupergroup: "超级群组",
	plugin.ChatTypeChannel:    "频道",
}

func field(emoji, label, value string) string {
	return fmt.Sprintf("%s *%s* » %s", emoji, label, value)
}

func RenderUser(p UserProfile) string {
	u := p.User
	var sb strings.Builder

	sb.WriteString("👤 *用户信息*\n\n*基本信息*\n")
	sb.WriteString(field("🆔", "ID", plugin.Code(strconv.FormatInt(u.ID, 10))))
	sb.WriteString("\n" + field("📋", "名字", plugin.EscapeMarkdown(u.FirstName)))
	if u.LastName != "" {
		sb.WriteString("\n" + field("📝", "姓氏", plugin.EscapeMarkdown(u.LastName)))
	}
	if u.Username != "" {
		sb.WriteString("\n" + field("🔰", "用户名", "@"+plugin.EscapeMarkdown(u.Username)))
	}

	if m := p.Member; m != nil {
		label, ok := memberStatusLabels[m.Status]
		if !ok {
			label = string(m.Status)
		}
		sb.WriteString("\n" + field("💫", "群内身份", label))
		if m.Status == plugin.MemberAdministrator {
			if rights := adminRights(m); len(rights) > 0 {
				sb.WriteString("\n" + field("🛡", "管理权限", strings.Join(rights, " | ")))
			}
		}
	}

	var status []string
	if u.IsBot {
		status = append(status, "🤖 机器人")
	}
	if u.IsPremium {
		status = append(status, "💎 高级用户")
	}
	section(&sb, "用户状态", strings.Join(status, " | "))

	var other []string
	if u.LanguageCode != "" {
		other = append(other, field("🌐", "语言", strings.ToUpper(u.LanguageCode)))
	}
	if p.Bio != "" {
		other = append(other, field("ℹ️", "个性签名", plugin.EscapeMarkdown(p.Bio)))
	}
	section(&sb, "其他信息", strings.Join(other, "\n"))

	link := fmt.Sprintf("🔗 [%s](tg://user?id=%d)", linkText(u.FirstName), u.ID)
	if u.Username != "" {
		link += " (@" + plugin.EscapeMarkdown(u.Username) + ")"
	}
	section(&sb, "链接", link)

	return sb.String()
}

func RenderChat(p ChatProfile) string {
	c := p.Chat
	var sb strings.Builder

	typeLabel, ok := chatTypeLabels[c.Type]
	if !ok {
		typeLabel = string(c.Type)
	}

	fmt.Fprintf(&sb, "📢 *%s信息*\n\n*基本信息*\n", typeLabel)
	sb.WriteString(field("🆔", "ID", plugin.Code(strconv.FormatInt(c.ID, 10))))
	sb.WriteString("\n" + field("📋", "标题", plugin.EscapeMarkdown(c.Title)))
	if c.Username != "" {
		sb.WriteString("\n" + field("🔰", "用户名", "@"+plugin.EscapeMarkdown(c.Username)))
	}
	if p.MemberCount > 0 {
		sb.WriteString("\n" + field("👥", "成员数", strconv.Itoa(p.MemberCount)))
	}
	if v := p.Viewer; v != nil {
		switch v.Status {
		case plugin.MemberCreator:
			sb.WriteString("\n" + field("👑", "身份", "群主"))
		case plugin.MemberAdministrator:
			sb.WriteString("\n" + field("⭐️", "身份", "管理员"))
		}
	}

	var status []string
	if c.HasProtectedContent {
		status = append(status, "🔒 受保护内容")
	}
	if c.IsForum {
		status = append(status, "📑 话题群组")
	}
	section(&sb, "群组状态", strings.Join(status, " | "))

	var other []string
	if c.SlowModeDelay > 0 {
		other = append(other, field("⏱", "慢速模式", fmt.Sprintf("%d秒", c.SlowModeDelay)))
	}
	if c.Description != "" {
		other = append(other, field("📝", "简介", plugin.EscapeMarkdown(c.Description)))
	}
	section(&sb, "其他信息", strings.Join(other, "\n"))

	links := []string{fmt.Sprintf("🔗 [%s](%s)", linkText(c.Title), ChatLink(c))}
	if c.InviteLink != "" {
		links = append(links, fmt.Sprintf("📨 [邀请链接](%s)", c.InviteLink))
	}
	if p.LinkedTitle != "" {
		links = append(links, field("🔗", "关联群组", plugin.EscapeMarkdown(p.LinkedTitle)))
	}
	section(&sb, "链接", strings.Join(links, "\n"))

	return sb.String()
}

// ChatLink is the public link of a chat, or the internal link for private
// supergroups and channels.
func ChatLink(c plugin.ChatInfo) string {
	if c.Username != "" {
		return "https://t.me/" + c.Username
	}
	id := strconv.FormatInt(c.ID, 10)
	if c.Type == plugin.ChatTypeChannel || c.Type == plugin.ChatTypeSupergroup {
		return "https://t.me/c/" + strings.TrimPrefix(id, "-100")
	}
	return "tg://chat?id=" + id
}

func adminRights(m *plugin.ChatMember) []string {
	var rights []string
	add := func(ok bool, label string) {
		if ok {
			rights = append(rights, label)
		}
	}
	add(m.CanChangeInfo, "更改信息")
	add(m.CanDeleteMessages, "删除消息")
	add(m.CanRestrictMembers, "封禁用户")
	add(m.CanInviteUsers, "邀请用户")
	add(m.CanPinMessages, "置顶消息")
	add(m.CanPromoteMembers, "添加管理")
	add(m.CanManageVideoChats, "管理语音")
	return rights
}

// section appends a titled block; empty bodies are skipped.
func section(sb *strings.Builder, title, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(sb, "\n\n*%s*\n%s", title, body)
}

var linkTextReplacer = strings.NewReplacer("\u2060", "", "[", "(", "]", ")")

func linkText(s string) string {
	return linkTextReplacer.Replace(s)
}
