// Package telegram receives Bot API webhook deliveries.
package telegram

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	telegramInfra "userbot/internal/infrastructure/telegram"
	"userbot/internal/shared/goroutine"
	"userbot/internal/shared/logger"
	"userbot/internal/shared/utils"
)

// UpdateRecorder counts received updates by source.
type UpdateRecorder interface {
	IncUpdate(source string)
}

// Handler handles webhook requests from Telegram
type Handler struct {
	updates       telegramInfra.UpdateHandler
	recorder      UpdateRecorder
	logger        logger.Interface
	webhookSecret string
	// detach runs the update after the response is written.
	detach func(name string, fn func())
}

func NewHandler(updates telegramInfra.UpdateHandler, recorder UpdateRecorder, webhookSecret string, log logger.Interface) *Handler {
	return &Handler{
		updates:       updates,
		recorder:      recorder,
		logger:        log,
		webhookSecret: webhookSecret,
		detach: func(name string, fn func()) {
			goroutine.SafeGo(log, name, fn)
		},
	}
}

// HandleWebhook acknowledges the update at once and processes it in the
// background, since plugin commands can outlast Telegram's webhook timeout.
// POST /telegram/webhook
func (h *Handler) HandleWebhook(c *gin.Context) {
	// an unset secret would let anyone inject updates
	if h.webhookSecret == "" {
		h.logger.Errorw("webhook secret not configured, rejecting request")
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "webhook not configured")
		return
	}

	secretHeader := c.GetHeader("X-Telegram-Bot-Api-Secret-Token")
	if subtle.ConstantTimeCompare([]byte(secretHeader), []byte(h.webhookSecret)) != 1 {
		h.logger.Warnw("webhook secret verification failed",
			"received_secret_empty", secretHeader == "",
		)
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid webhook secret")
		return
	}

	var update telegramInfra.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.Warnw("failed to parse webhook update", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if h.recorder != nil {
		h.recorder.IncUpdate("webhook")
	}

	// the request context ends with the response
	ctx := context.WithoutCancel(c.Request.Context())
	h.detach("telegram-webhook-update", func() {
		if err := h.updates.HandleUpdate(ctx, &update); err != nil {
			h.logger.Errorw("failed to handle webhook update",
				"update_id", update.UpdateID,
				"error", err,
			)
		}
	})

	utils.SuccessResponse(c, http.StatusOK, "", nil)
}
