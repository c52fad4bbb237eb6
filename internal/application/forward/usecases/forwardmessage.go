package usecases

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"userbot/internal/domain/plugin"
	apperrors "userbot/internal/shared/errors"
	"userbot/internal/shared/logger"
)

// DefaultTargetKey is the store key holding the default forward target.
const DefaultTargetKey = "forward.default-target"

const (
	MsgReplyRequired     = "请回复需要转发的消息"
	MsgNoDefaultTarget   = "未设置默认转发目标，请使用 -fw -set <target_id> 设置"
	MsgBadDefaultTarget  = "默认转发目标格式错误，请重新设置"
	MsgBadTargetID       = "目标ID格式错误，请确保输入的是有效的数字ID"
	MsgUnknownOption     = "参数错误，请使用 -id/-set/-del"
	MsgUsage             = "参数错误，格式：-fw -id <target_id> 或 -fw -set <target_id>"
	MsgDefaultTargetGone = "已删除默认转发目标"
	MsgChannelPrivate    = "无法转发到该频道，可能是因为您不是频道成员"
	MsgNotParticipant    = "无法转发到该群组，可能是因为您不是群组成员"
	MsgWriteForbidden    = "无法转发到该目标，可能是因为您没有发言权限"
)

type ForwardMessageCommand struct {
	// Message is the command message; its reply is what gets forwarded.
	Message    *plugin.Message
	Parameters []string
}

// ForwardMessageUseCase forwards the replied-to message to an explicit or
// stored default target, and manages the default target.
type ForwardMessageUseCase struct {
	store  plugin.Store
	logger logger.Interface
}

func NewForwardMessageUseCase(store plugin.Store, logger logger.Interface) *ForwardMessageUseCase {
	return &ForwardMessageUseCase{
		store:  store,
		logger: logger,
	}
}

func (uc *ForwardMessageUseCase) Execute(ctx context.Context, host plugin.Host, cmd ForwardMessageCommand) error {
	if cmd.Message == nil || cmd.Message.ReplyTo == nil {
		return apperrors.NewValidationError(MsgReplyRequired)
	}

	var target int64
	switch params := cmd.Parameters; {
	case len(params) == 0:
		id, err := uc.defaultTarget(ctx)
		if err != nil {
			return err
		}
		target = id

	case len(params) == 1 && params[0] == "-del":
		return uc.deleteDefault(ctx, host)

	case len(params) == 2:
		switch params[0] {
		case "-id":
			id, err := parseTargetID(params[1])
			if err != nil {
				return err
			}
			target = id
		case "-set":
			return uc.setDefault(ctx, host, params[1])
		case "-del":
			return uc.deleteDefault(ctx, host)
		default:
			return apperrors.NewValidationError(MsgUnknownOption)
		}

	default:
		return apperrors.NewValidationError(MsgUsage)
	}

	return uc.forward(ctx, host, cmd.Message, target)
}

func (uc *ForwardMessageUseCase) defaultTarget(ctx context.Context) (int64, error) {
	raw, err := uc.store.Get(ctx, DefaultTargetKey)
	if errors.Is(err, plugin.ErrNotFound) || (err == nil && strings.TrimSpace(raw) == "") {
		return 0, apperrors.NewNotFoundError(MsgNoDefaultTarget)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read default target: %w", err)
	}

	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(MsgBadDefaultTarget)
	}
	return id, nil
}

func (uc *ForwardMessageUseCase) setDefault(ctx context.Context, host plugin.Host, raw string) error {
	id, err := parseTargetID(raw)
	if err != nil {
		return err
	}
	if err := uc.store.Set(ctx, DefaultTargetKey, strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("failed to store default target: %w", err)
	}

	uc.logger.Infow("default forward target set", "target_id", id)
	return host.Edit(ctx, fmt.Sprintf("已设置默认转发目标为：%d", id))
}

func (uc *ForwardMessageUseCase) deleteDefault(ctx context.Context, host plugin.Host) error {
	if err := uc.store.Delete(ctx, DefaultTargetKey); err != nil && !errors.Is(err, plugin.ErrNotFound) {
		return fmt.Errorf("failed to delete default target: %w", err)
	}

	uc.logger.Infow("default forward target deleted")
	return host.Edit(ctx, MsgDefaultTargetGone)
}

func (uc *ForwardMessageUseCase) forward(ctx context.Context, host plugin.Host, msg *plugin.Message, target int64) error {
	if err := host.Forward(ctx, msg.ReplyTo, target); err != nil {
		return uc.forwardFailure(err, target)
	}

	if err := host.Delete(ctx); err != nil {
		uc.logger.Warnw("failed to delete forward command", "error", err)
	}

	uc.logger.Infow("message forwarded",
		"target_id", target,
		"message_id", msg.ReplyTo.ID,
	)
	return nil
}

// forwardFailure maps a refused forward to the message shown in chat.
func (uc *ForwardMessageUseCase) forwardFailure(err error, target int64) error {
	switch {
	case errors.Is(err, plugin.ErrChannelPrivate):
		return apperrors.NewForbiddenError(MsgChannelPrivate).WithCause(err)
	case errors.Is(err, plugin.ErrNotParticipant):
		return apperrors.NewForbiddenError(MsgNotParticipant).WithCause(err)
	case errors.Is(err, plugin.ErrWriteForbidden):
		return apperrors.NewForbiddenError(MsgWriteForbidden).WithCause(err)
	case errors.Is(err, plugin.ErrRejected):
		uc.logger.Warnw("forward rejected", "target_id", target, "error", err)
		return apperrors.NewUpstreamError("转发失败: " + err.Error()).WithCause(err)
	default:
		uc.logger.Errorw("forward failed", "target_id", target, "error", err)
		return apperrors.NewInternalError("发生未知错误: " + err.Error()).WithCause(err)
	}
}

func parseTargetID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(MsgBadTargetID)
	}
	return id, nil
}
