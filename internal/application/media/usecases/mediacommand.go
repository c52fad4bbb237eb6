package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"userbot/internal/domain/media"
	"userbot/internal/domain/plugin"
	apperrors "userbot/internal/shared/errors"
	"userbot/internal/shared/logger"
)

type Timeouts struct {
	API      time.Duration
	Download time.Duration
}

// MediaCommandUseCase manages a keyword API registry and posts the media an
// API points at. One instance serves one Kind.
type MediaCommandUseCase struct {
	kind     media.Kind
	store    plugin.Store
	source   MediaSource
	timeouts Timeouts
	logger   logger.Interface
}

func NewMediaCommandUseCase(
	kind media.Kind,
	store plugin.Store,
	source MediaSource,
	timeouts Timeouts,
	logger logger.Interface,
) *MediaCommandUseCase {
	return &MediaCommandUseCase{
		kind:     kind,
		store:    store,
		source:   source,
		timeouts: timeouts,
		logger:   logger.With("kind", kind.Command),
	}
}

// Execute handles "<cmd>", "<cmd> list", "<cmd> <kw> delete",
// "<cmd> <kw> <url>" and "<cmd> <kw>".
func (uc *MediaCommandUseCase) Execute(ctx context.Context, host plugin.Host, params []string) error {
	if len(params) == 0 {
		return host.Edit(ctx, uc.usage())
	}

	registry, err := uc.loadRegistry(ctx)
	if err != nil {
		return err
	}

	if params[0] == "list" {
		return host.Edit(ctx, uc.listText(registry))
	}

	keyword := params[0]
	if len(params) > 1 {
		if params[1] == "delete" {
			return uc.remove(ctx, host, registry, keyword)
		}
		return uc.put(ctx, host, registry, keyword, params[1])
	}

	url, ok := registry.Lookup(keyword)
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("⚠️ *关键词 %s 不存在，请先添加对应的API*", plugin.Code(keyword)))
	}
	return uc.post(ctx, host, keyword, url)
}

func (uc *MediaCommandUseCase) usage() string {
	cmd, noun := uc.kind.Command, uc.kind.Noun
	return "*使用方法*：\n" +
		fmt.Sprintf("`%s [关键词]` - 获取%s\n", cmd, noun) +
		fmt.Sprintf("`%s [关键词] [API地址]` - 添加/更新API\n", cmd) +
		fmt.Sprintf("`%s [关键词] delete` - 删除API\n", cmd) +
		fmt.Sprintf("`%s list` - 列出所有API", cmd)
}

func (uc *MediaCommandUseCase) listText(registry *media.Registry) string {
	if registry.Len() == 0 {
		return "⚠️ *尚未添加任何API*"
	}

	var sb strings.Builder
	sb.WriteString("📋 *已添加的API列表*：\n\n")
	for _, api := range registry.List() {
		fmt.Fprintf(&sb, "🔸 %s - %s\n", plugin.Bold(api.Keyword), plugin.Code(api.URL))
	}
	return sb.String()
}

func (uc *MediaCommandUseCase) remove(ctx context.Context, host plugin.Host, registry *media.Registry, keyword string) error {
	if !registry.Remove(keyword) {
		return apperrors.NewNotFoundError(fmt.Sprintf("⚠️ *关键词 %s 不存在*", plugin.Code(keyword)))
	}
	if err := uc.saveRegistry(ctx, registry); err != nil {
		return err
	}

	uc.logger.Infow("media api deleted", "keyword", keyword)
	return host.Edit(ctx, fmt.Sprintf("✅ *已删除关键词 %s 对应的API*", plugin.Code(keyword)))
}

func (uc *MediaCommandUseCase) put(ctx context.Context, host plugin.Host, registry *media.Registry, keyword, url string) error {
	registry.Put(keyword, url)
	if err := uc.saveRegistry(ctx, registry); err != nil {
		return err
	}

	uc.logger.Infow("media api saved", "keyword", keyword, "url", url)
	return host.Edit(ctx, fmt.Sprintf("✅ *已添加/更新关键词 %s 对应的API*：\n%s", plugin.Code(keyword), plugin.Code(url)))
}

func (uc *MediaCommandUseCase) post(ctx context.Context, host plugin.Host, keyword, apiURL string) error {
	noun := uc.kind.Noun
	uc.progress(ctx, host, fmt.Sprintf("🔍 *正在获取 %s %s...*", plugin.Code(keyword), noun))

	resp, err := uc.source.CallAPI(ctx, apiURL, uc.timeouts.API)
	if err != nil {
		return uc.failed(err)
	}
	if resp.StatusCode != http.StatusOK {
		return apperrors.NewUpstreamError(fmt.Sprintf("⚠️ *API请求失败 (%d)*", resp.StatusCode))
	}

	mediaURL := media.LocateURL(uc.kind, resp.ContentType, resp.FinalURL, resp.Body)
	uc.logger.Debugw("media located", "keyword", keyword, "media_url", mediaURL)

	if uc.kind.Upload == plugin.MediaVideo {
		uc.progress(ctx, host, fmt.Sprintf("⏬ *正在下载 %s %s...*", plugin.Code(keyword), noun))
	}

	data, err := uc.source.Download(ctx, mediaURL, uc.timeouts.Download)
	if err != nil {
		uc.logger.Warnw("media download failed", "keyword", keyword, "media_url", mediaURL, "error", err)
		return apperrors.NewUpstreamError(fmt.Sprintf("⚠️ *下载%s失败*", noun)).WithCause(err)
	}

	if uc.kind.Upload == plugin.MediaVideo {
		uc.progress(ctx, host, fmt.Sprintf("📤 *正在发送 %s %s...*", plugin.Code(keyword), noun))
	}

	err = host.SendMedia(ctx, plugin.Media{
		Kind:     uc.kind.Upload,
		FileName: uuid.NewString() + uc.kind.FileExt,
		Data:     data,
		Caption:  fmt.Sprintf("%s %s %s", uc.kind.Emoji, plugin.Bold(keyword), noun),
	})
	if err != nil {
		return uc.failed(err)
	}

	if err := host.Delete(ctx); err != nil {
		uc.logger.Warnw("failed to delete media command", "error", err)
	}

	uc.logger.Infow("media posted", "keyword", keyword, "bytes", len(data))
	return nil
}

func (uc *MediaCommandUseCase) failed(err error) error {
	uc.logger.Warnw("media command failed", "error", err)
	return apperrors.NewUpstreamError(fmt.Sprintf("⚠️ *获取%s失败*：%s", uc.kind.Noun, plugin.Code(err.Error()))).WithCause(err)
}

// progress edits are best effort.
func (uc *MediaCommandUseCase) progress(ctx context.Context, host plugin.Host, text string) {
	if err := host.Edit(ctx, text); err != nil {
		uc.logger.Debugw("progress edit failed", "error", err)
	}
}

// loadRegistry treats a missing or corrupt registry as empty.
func (uc *MediaCommandUseCase) loadRegistry(ctx context.Context) (*media.Registry, error) {
	raw, err := uc.store.Get(ctx, uc.kind.StoreKey())
	if err != nil && !errors.Is(err, plugin.ErrNotFound) {
		return nil, fmt.Errorf("failed to load media registry: %w", err)
	}

	registry, err := media.DecodeRegistry(raw)
	if err != nil {
		uc.logger.Warnw("discarding unreadable media registry", "error", err)
		return &media.Registry{}, nil
	}
	return registry, nil
}

func (uc *MediaCommandUseCase) saveRegistry(ctx context.Context, registry *media.Registry) error {
	raw, err := registry.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode media registry: %w", err)
	}
	if err := uc.store.Set(ctx, uc.kind.StoreKey(), raw); err != nil {
		return fmt.Errorf("failed to save media registry: %w", err)
	}
	return nil
}
