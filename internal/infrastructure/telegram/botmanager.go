package telegram

import (
	"context"
	"fmt"
	"sync"

	sharedConfig "userbot/internal/shared/config"
	"userbot/internal/shared/logger"
)

// UsernameSink learns the bot's username once it is known.
type UsernameSink interface {
	SetBotUsername(username string)
}

// BotManager starts the bot in polling or webhook mode and tears it down.
type BotManager struct {
	config      sharedConfig.TelegramConfig
	bot         *BotService
	handler     UpdateHandler
	offsetStore OffsetStore
	recorder    UpdateRecorder
	usernames   UsernameSink
	commands    []BotCommand
	logger      logger.Interface

	mu        sync.Mutex
	polling   *PollingService
	isRunning bool
}

func NewBotManager(
	config sharedConfig.TelegramConfig,
	bot *BotService,
	handler UpdateHandler,
	offsetStore OffsetStore,
	recorder UpdateRecorder,
	usernames UsernameSink,
	commands []BotCommand,
	logger logger.Interface,
) *BotManager {
	return &BotManager{
		config:      config,
		bot:         bot,
		handler:     handler,
		offsetStore: offsetStore,
		recorder:    recorder,
		usernames:   usernames,
		commands:    commands,
		logger:      logger,
	}
}

func (m *BotManager) usePolling() bool {
	return m.config.Mode != "webhook"
}

// Start verifies the token, publishes the command menu and begins receiving
// updates.
func (m *BotManager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isRunning {
		return nil
	}

	me, err := m.bot.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify bot token: %w", err)
	}
	if m.usernames != nil {
		m.usernames.SetBotUsername(me.Username)
	}
	m.logger.Infow("telegram bot authorised", "username", me.Username, "bot_id", me.ID)

	m.setupBotCommands(ctx)

	if m.usePolling() {
		m.polling = NewPollingService(m.bot, m.handler, m.offsetStore, m.recorder, m.config.PollTimeout, m.logger)
		if err := m.polling.Start(ctx); err != nil {
			return err
		}
		m.logger.Infow("telegram bot polling service started")
	} else {
		if err := m.bot.SetWebhook(ctx, m.config.WebhookURL, m.config.WebhookSecret); err != nil {
			return fmt.Errorf("failed to set webhook: %w", err)
		}
		m.logger.Infow("telegram bot webhook configured", "webhook_url", m.config.WebhookURL)
	}

	m.isRunning = true
	return nil
}

func (m *BotManager) setupBotCommands(ctx context.Context) {
	if len(m.commands) == 0 {
		return
	}
	if err := m.bot.SetMyCommands(ctx, m.commands); err != nil {
		m.logger.Warnw("failed to set bot commands", "error", err)
		return
	}
	m.logger.Infow("bot commands configured", "command_count", len(m.commands))
}

// Stop ends polling. The webhook, if any, stays registered so updates queue
// at Telegram until the next start.
func (m *BotManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isRunning {
		return
	}
	if m.polling != nil {
		m.polling.Stop()
		m.polling = nil
	}
	m.isRunning = false
	m.logger.Infow("telegram bot service stopped")
}

func (m *BotManager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isRunning
}
