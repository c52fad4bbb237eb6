package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"userbot/internal/shared/version"
)

// BotStatus reports whether the chat host is receiving updates.
type BotStatus interface {
	IsRunning() bool
}

type HealthHandler struct {
	bot BotStatus
}

// NewHealthHandler accepts a nil bot when the process serves HTTP only.
func NewHealthHandler(bot BotStatus) *HealthHandler {
	return &HealthHandler{bot: bot}
}

type healthResponse struct {
	Status     string       `json:"status"`
	BotRunning bool         `json:"bot_running"`
	Version    version.Info `json:"version"`
}

// HealthCheck handles GET /healthz
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := healthResponse{
		Status:  "ok",
		Version: version.Get(),
	}
	if h.bot != nil {
		resp.BotRunning = h.bot.IsRunning()
	}
	c.JSON(http.StatusOK, resp)
}
