// Package container assembles the userbot from configuration.
package container

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	forwardUsecases "userbot/internal/application/forward/usecases"
	mediaUsecases "userbot/internal/application/media/usecases"
	profileUsecases "userbot/internal/application/profile/usecases"
	subscriptionUsecases "userbot/internal/application/subscription/usecases"
	"userbot/internal/domain/media"
	"userbot/internal/domain/plugin"
	"userbot/internal/infrastructure/cache"
	"userbot/internal/infrastructure/config"
	"userbot/internal/infrastructure/httpclient"
	"userbot/internal/infrastructure/metrics"
	"userbot/internal/infrastructure/telegram"
	"userbot/internal/interfaces/bot"
	httpRouter "userbot/internal/interfaces/http"
	"userbot/internal/interfaces/http/handlers"
	telegramHandlers "userbot/internal/interfaces/http/handlers/telegram"
	"userbot/internal/shared/logger"
)

// Container owns the long-lived components of one process.
type Container struct {
	cfg *config.Config
	log logger.Interface

	registry *prometheus.Registry
	metrics  *metrics.Metrics
	redis    *redis.Client
	store    plugin.Store
	fetcher  *httpclient.Fetcher

	Inspector  *subscriptionUsecases.InspectSubscriptionsUseCase
	Dispatcher *plugin.Dispatcher
	Commands   *plugin.Registry
	Bot        *telegram.BotManager
	Router     *httpRouter.Router
}

// NewInspectorContainer builds only what the cha command needs. It touches
// neither redis nor Telegram.
func NewInspectorContainer(cfg *config.Config, log logger.Interface) *Container {
	c := &Container{cfg: cfg, log: log}
	c.initMetrics()
	c.initInspector()
	return c
}

// New builds the full bot: settings store, plugins, Telegram host and HTTP
// router.
func New(ctx context.Context, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{cfg: cfg, log: log}
	c.initMetrics()

	if err := c.initStore(ctx); err != nil {
		return nil, err
	}
	c.initInspector()
	if err := c.initPlugins(); err != nil {
		c.Close()
		return nil, err
	}
	c.initTelegram()
	return c, nil
}

func (c *Container) initMetrics() {
	c.registry = prometheus.NewRegistry()
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.metrics = metrics.New(c.registry)

	c.fetcher = httpclient.NewFetcher(httpclient.Config{
		MaxRedirects: c.cfg.Subscription.MaxRedirects,
		MaxBodyBytes: c.cfg.Subscription.MaxBodyBytes,
	}, c.metrics, c.log.With("component", "httpclient"))
}

// initStore connects to redis when enabled; otherwise plugin settings live
// in memory and are lost on restart.
func (c *Container) initStore(ctx context.Context) error {
	if !c.cfg.Redis.Enabled {
		c.log.Warnw("redis disabled, plugin settings will not survive a restart")
		c.store = cache.NewMemoryKVStore()
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.GetAddr(),
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.log.Infow("redis connection established", "addr", c.cfg.Redis.GetAddr())

	c.redis = client
	c.store = cache.NewRedisKVStore(client)
	return nil
}

func (c *Container) initInspector() {
	sub := c.cfg.Subscription
	source := httpclient.NewSubscriptionClient(c.fetcher, sub.UserAgent, sub.FetchTimeout)
	names := httpclient.NewNameResolver(c.fetcher, httpclient.NameResolverConfig{
		ClientUserAgent:  sub.UserAgent,
		BrowserUserAgent: sub.BrowserUserAgent,
		PanelTimeout:     sub.FetchTimeout,
		LoginTimeout:     sub.LoginTimeout,
		FallbackTimeout:  sub.FallbackTimeout,
	})
	c.Inspector = subscriptionUsecases.NewInspectSubscriptionsUseCase(source, names, c.metrics, c.log.With("component", "cha"))
}

func (c *Container) initPlugins() error {
	mediaCfg := c.cfg.Media
	mediaSource := httpclient.NewMediaClient(c.fetcher, c.cfg.Subscription.BrowserUserAgent, mediaCfg.MaxDownloadBytes)

	images := mediaUsecases.NewMediaCommandUseCase(media.Image, c.store, mediaSource, mediaUsecases.Timeouts{
		API:      mediaCfg.ImageAPITimeout,
		Download: mediaCfg.ImageDownloadTimeout,
	}, c.log.With("component", "img"))
	videos := mediaUsecases.NewMediaCommandUseCase(media.Video, c.store, mediaSource, mediaUsecases.Timeouts{
		API:      mediaCfg.VideoAPITimeout,
		Download: mediaCfg.VideoDownloadTimeout,
	}, c.log.With("component", "vd"))

	h := bot.NewHandlers(
		c.Inspector,
		forwardUsecases.NewForwardMessageUseCase(c.store, c.log.With("component", "fw")),
		images,
		videos,
		profileUsecases.NewShowProfileUseCase(c.log.With("component", "kk")),
	)

	c.Commands = plugin.NewRegistry()
	for _, cmd := range h.Commands() {
		if err := c.Commands.Register(cmd); err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
	}

	c.Dispatcher = plugin.NewDispatcher(c.Commands, plugin.DispatcherConfig{
		Prefixes:       c.cfg.Telegram.CommandPrefixes,
		AllowedUserIDs: c.cfg.Telegram.AllowedUserIDs,
	}, c.metrics, c.log.With("component", "dispatcher"))
	return nil
}

func (c *Container) initTelegram() {
	tgLog := c.log.With("component", "telegram")
	botService := telegram.NewBotService(c.cfg.Telegram)
	updates := telegram.NewCommandUpdateHandler(botService, c.Dispatcher, tgLog)

	c.Bot = telegram.NewBotManager(
		c.cfg.Telegram,
		botService,
		updates,
		cache.NewPollingOffsetStore(c.store),
		c.metrics,
		c.Dispatcher,
		botCommands(c.Commands.List()),
		tgLog,
	)

	var webhook *telegramHandlers.Handler
	if c.cfg.Telegram.Mode == "webhook" {
		webhook = telegramHandlers.NewHandler(updates, c.metrics, c.cfg.Telegram.WebhookSecret, tgLog)
	}

	c.Router = httpRouter.NewRouter(c.cfg.Server, httpRouter.RouterDeps{
		Subscriptions: handlers.NewSubscriptionHandler(c.Inspector, c.log.With("component", "api")),
		Health:        handlers.NewHealthHandler(c.Bot),
		Webhook:       webhook,
		Metrics:       c.metrics,
		Gatherer:      c.registry,
		Logger:        c.log.With("component", "http"),
	})
}

func botCommands(cmds []plugin.Command) []telegram.BotCommand {
	out := make([]telegram.BotCommand, 0, len(cmds))
	for _, cmd := range cmds {
		out = append(out, telegram.BotCommand{Command: cmd.Name, Description: cmd.Description})
	}
	return out
}

// Close releases the redis connection, if any.
func (c *Container) Close() {
	if c.redis == nil {
		return
	}
	if err := c.redis.Close(); err != nil {
		c.log.Warnw("failed to close redis client", "error", err)
	}
	c.redis = nil
}
