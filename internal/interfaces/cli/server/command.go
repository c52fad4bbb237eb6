package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"userbot/internal/infrastructure/config"
	"userbot/internal/interfaces/container"
	"userbot/internal/shared/goroutine"
	"userbot/internal/shared/logger"
	"userbot/internal/shared/utils"
	"userbot/internal/shared/version"
)

const shutdownTimeout = 30 * time.Second

func NewCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Run the bot and the HTTP server",
		Long:  `Connect to Telegram, serve the plugin commands and expose the webhook, inspection API, health and metrics endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), *configPath)
		},
	}
}

func run(parent context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}
	if cfg.Telegram.Mode == "webhook" && !cfg.Server.Enabled {
		return fmt.Errorf("webhook mode requires server.enabled")
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == gin.DebugMode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting userbot",
		"version", version.Get().String(),
		"bot", utils.MaskToken(cfg.Telegram.BotToken),
		"mode", cfg.Telegram.Mode,
		"redis", cfg.Redis.Enabled,
	)

	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := container.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Bot.Start(ctx); err != nil {
		return fmt.Errorf("failed to start telegram bot: %w", err)
	}

	serverErr := make(chan error, 1)
	if cfg.Server.Enabled {
		goroutine.SafeGo(log, "http-server", func() {
			serverErr <- app.Router.ListenAndServe()
		})
	}

	select {
	case <-ctx.Done():
		log.Infow("shutting down")
	case err = <-serverErr:
		if err != nil {
			log.Errorw("HTTP server failed", "error", err)
		}
	}

	app.Bot.Stop()

	if cfg.Server.Enabled {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := app.Router.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Errorw("server forced to shutdown", "error", shutdownErr)
		}
	}

	log.Infow("userbot exited")
	return err
}
