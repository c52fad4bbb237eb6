// Package bot adapts the plugin use cases to chat commands.
package bot

import (
	"context"

	forwardUsecases "userbot/internal/application/forward/usecases"
	mediaUsecases "userbot/internal/application/media/usecases"
	profileUsecases "userbot/internal/application/profile/usecases"
	subscriptionUsecases "userbot/internal/application/subscription/usecases"
	"userbot/internal/domain/plugin"
	"userbot/internal/domain/subscription"
	apperrors "userbot/internal/shared/errors"
)

type SubscriptionInspector interface {
	Execute(ctx context.Context, text string) (*subscriptionUsecases.InspectResult, error)
}

type MessageForwarder interface {
	Execute(ctx context.Context, host plugin.Host, cmd forwardUsecases.ForwardMessageCommand) error
}

type MediaCommand interface {
	Execute(ctx context.Context, host plugin.Host, params []string) error
}

type ProfileViewer interface {
	Execute(ctx context.Context, host plugin.Host, cmd profileUsecases.ShowProfileCommand) (string, error)
}

// Handlers owns one use case per command.
type Handlers struct {
	inspector SubscriptionInspector
	forwarder MessageForwarder
	images    MediaCommand
	videos    MediaCommand
	profiles  ProfileViewer
}

func NewHandlers(
	inspector SubscriptionInspector,
	forwarder MessageForwarder,
	images MediaCommand,
	videos MediaCommand,
	profiles ProfileViewer,
) *Handlers {
	return &Handlers{
		inspector: inspector,
		forwarder: forwarder,
		images:    images,
		videos:    videos,
		profiles:  profiles,
	}
}

var (
	_ SubscriptionInspector = (*subscriptionUsecases.InspectSubscriptionsUseCase)(nil)
	_ MessageForwarder      = (*forwardUsecases.ForwardMessageUseCase)(nil)
	_ MediaCommand          = (*mediaUsecases.MediaCommandUseCase)(nil)
	_ ProfileViewer         = (*profileUsecases.ShowProfileUseCase)(nil)
)

// Commands lists the built-in commands.
func (h *Handlers) Commands() []plugin.Command {
	return []plugin.Command{
		{
			Name:        "cha",
			Description: "查询订阅链接的流量、节点与到期信息",
			Usage:       "<订阅链接…> 或回复含订阅链接的消息",
			Handler:     h.Cha,
		},
		{
			Name:        "fw",
			Description: "将回复的消息转发到指定目标",
			Usage:       "[-id/-set/-del] [target_id]",
			Handler:     h.Forward,
		},
		{
			Name:        "img",
			Description: "通过API获取图片",
			Usage:       "[关键词] (API地址/delete/list)",
			Handler:     h.Image,
		},
		{
			Name:        "vd",
			Description: "通过API获取视频",
			Usage:       "[关键词] (API地址/delete/list)",
			Handler:     h.Video,
		},
		{
			Name:        "kk",
			Description: "查看用户或群组详细信息",
			Usage:       "[username/uid/gid]",
			Handler:     h.Profile,
		},
	}
}

// Cha inspects the links in the replied-to message, or in the command itself.
func (h *Handlers) Cha(ctx context.Context, c *plugin.Context) error {
	result, err := h.inspector.Execute(ctx, c.Source().Content())
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.NewBadRequestError(subscription.MsgParamError).WithCause(err)
	}
	return c.Host.Edit(ctx, result.Text)
}

func (h *Handlers) Forward(ctx context.Context, c *plugin.Context) error {
	return h.forwarder.Execute(ctx, c.Host, forwardUsecases.ForwardMessageCommand{
		Message:    c.Message,
		Parameters: c.Parameters,
	})
}

func (h *Handlers) Image(ctx context.Context, c *plugin.Context) error {
	return h.images.Execute(ctx, c.Host, c.Parameters)
}

func (h *Handlers) Video(ctx context.Context, c *plugin.Context) error {
	return h.videos.Execute(ctx, c.Host, c.Parameters)
}

func (h *Handlers) Profile(ctx context.Context, c *plugin.Context) error {
	_, err := h.profiles.Execute(ctx, c.Host, profileUsecases.ShowProfileCommand{
		Message:    c.Message,
		Parameters: c.Parameters,
	})
	return err
}
