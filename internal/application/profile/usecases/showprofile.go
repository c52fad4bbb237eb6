package usecases

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"userbot/internal/domain/plugin"
	"userbot/internal/domain/profile"
	apperrors "userbot/internal/shared/errors"
	"userbot/internal/shared/logger"
)

const (
	MsgNoSubject      = "出错了呜呜呜 ~ 无法获取该用户信息"
	MsgSubjectMissing = "出错了呜呜呜 ~ 指定的用户或群组不存在"
)

type ShowProfileCommand struct {
	Message    *plugin.Message
	Parameters []string
}

// ShowProfileUseCase describes the current chat, the sender of a replied-to
// message, or a user or chat named by username or id.
type ShowProfileUseCase struct {
	logger logger.Interface
}

func NewShowProfileUseCase(logger logger.Interface) *ShowProfileUseCase {
	return &ShowProfileUseCase{logger: logger}
}

// subject is either a user or a chat.
type subject struct {
	user *plugin.User
	chat *plugin.ChatInfo
}

func (uc *ShowProfileUseCase) Execute(ctx context.Context, host plugin.Host, cmd ShowProfileCommand) (string, error) {
	subj, err := uc.resolve(ctx, host, cmd)
	if err != nil {
		return "", err
	}

	var text string
	if subj.user != nil {
		text = uc.renderUser(ctx, host, cmd.Message, *subj.user)
	} else {
		text = uc.renderChat(ctx, host, cmd.Message, subj.chat)
	}

	if err := host.Edit(ctx, text); err != nil {
		return "", err
	}
	return text, nil
}

func (uc *ShowProfileUseCase) resolve(ctx context.Context, host plugin.Host, cmd ShowProfileCommand) (subject, error) {
	msg := cmd.Message

	switch {
	case msg.ReplyTo != nil:
		reply := msg.ReplyTo
		if reply.From != nil {
			return subject{user: reply.From}, nil
		}
		if reply.SenderChat != nil {
			return uc.chatSubject(ctx, host, reply.SenderChat.ID, reply.SenderChat), nil
		}
		return subject{}, apperrors.NewNotFoundError(MsgNoSubject)

	case len(cmd.Parameters) == 1:
		return uc.lookup(ctx, host, cmd.Parameters[0])

	case len(cmd.Parameters) > 1:
		return senderSubject(msg)

	case msg.Chat.Type == plugin.ChatTypePrivate:
		if msg.From != nil && msg.From.ID == msg.Chat.ID {
			return subject{user: msg.From}, nil
		}
		return subject{user: &plugin.User{
			ID:        msg.Chat.ID,
			FirstName: msg.Chat.FirstName,
			LastName:  msg.Chat.LastName,
			Username:  msg.Chat.Username,
		}}, nil

	default:
		return uc.chatSubject(ctx, host, msg.Chat.ID, &msg.Chat), nil
	}
}

// chatSubject prefers the full chat profile and falls back to what the
// message carried.
func (uc *ShowProfileUseCase) chatSubject(ctx context.Context, host plugin.Host, id int64, fallback *plugin.Chat) subject {
	info, err := host.GetChat(ctx, strconv.FormatInt(id, 10))
	if err == nil {
		return subject{chat: info}
	}

	uc.logger.Debugw("chat lookup failed, using message chat", "chat_id", id, "error", err)
	return subject{chat: &plugin.ChatInfo{
		ID:       fallback.ID,
		Type:     fallback.Type,
		Title:    fallback.Title,
		Username: fallback.Username,
	}}
}

func (uc *ShowProfileUseCase) lookup(ctx context.Context, host plugin.Host, ref string) (subject, error) {
	ref = strings.TrimSpace(ref)
	if _, err := strconv.ParseInt(ref, 10, 64); err != nil && !strings.HasPrefix(ref, "@") {
		ref = "@" + ref
	}

	info, err := host.GetChat(ctx, ref)
	if err != nil {
		if errors.Is(err, plugin.ErrNotFound) || errors.Is(err, plugin.ErrRejected) {
			return subject{}, apperrors.NewNotFoundError(MsgSubjectMissing).WithCause(err)
		}
		return subject{}, err
	}

	if info.Type == plugin.ChatTypePrivate {
		return subject{user: &plugin.User{
			ID:        info.ID,
			FirstName: info.FirstName,
			LastName:  info.LastName,
			Username:  info.Username,
		}}, nil
	}
	return subject{chat: info}, nil
}

func senderSubject(msg *plugin.Message) (subject, error) {
	if msg.From != nil {
		return subject{user: msg.From}, nil
	}
	if msg.SenderChat != nil {
		return subject{chat: &plugin.ChatInfo{
			ID:       msg.SenderChat.ID,
			Type:     msg.SenderChat.Type,
			Title:    msg.SenderChat.Title,
			Username: msg.SenderChat.Username,
		}}, nil
	}
	return subject{}, apperrors.NewNotFoundError(MsgNoSubject)
}

// renderUser enriches the user with group membership and bio. Lookup
// failures only shorten the profile.
func (uc *ShowProfileUseCase) renderUser(ctx context.Context, host plugin.Host, msg *plugin.Message, user plugin.User) string {
	p := profile.UserProfile{User: user}

	if msg.Chat.Type.IsGroup() {
		member, err := host.GetChatMember(ctx, msg.Chat.ID, user.ID)
		if err != nil {
			uc.logger.Debugw("member lookup failed", "user_id", user.ID, "error", err)
		} else {
			p.Member = member
		}
	}

	if info, err := host.GetChat(ctx, strconv.FormatInt(user.ID, 10)); err == nil {
		p.Bio = info.Bio
	}

	return profile.RenderUser(p)
}

func (uc *ShowProfileUseCase) renderChat(ctx context.Context, host plugin.Host, msg *plugin.Message, chat *plugin.ChatInfo) string {
	p := profile.ChatProfile{Chat: *chat}

	if chat.Type != plugin.ChatTypePrivate {
		if count, err := host.GetChatMemberCount(ctx, chat.ID); err == nil {
			p.MemberCount = count
		}
		if msg.From != nil {
			if viewer, err := host.GetChatMember(ctx, chat.ID, msg.From.ID); err == nil {
				p.Viewer = viewer
			}
		}
	}

	if chat.LinkedChatID != 0 {
		if linked, err := host.GetChat(ctx, strconv.FormatInt(chat.LinkedChatID, 10)); err == nil {
			p.LinkedTitle = linked.Title
		}
	}

	return profile.RenderChat(p)
}
