package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"userbot/internal/application/subscription/usecases"
	"userbot/internal/shared/errors"
	"userbot/internal/shared/logger"
	"userbot/internal/shared/utils"
)

type SubscriptionInspector interface {
	Execute(ctx context.Context, text string) (*usecases.InspectResult, error)
}

var _ SubscriptionInspector = (*usecases.InspectSubscriptionsUseCase)(nil)

// InspectSubscriptionsRequest carries free text containing subscription links.
type InspectSubscriptionsRequest struct {
	Text string `json:"text" binding:"required"`
}

type SubscriptionHandler struct {
	inspector SubscriptionInspector
	logger    logger.Interface
}

func NewSubscriptionHandler(inspector SubscriptionInspector, log logger.Interface) *SubscriptionHandler {
	return &SubscriptionHandler{inspector: inspector, logger: log}
}

// Inspect runs the same inspection as the cha command and returns the
// structured slots together with the chat rendering.
// POST /api/v1/subscriptions/inspect
func (h *SubscriptionHandler) Inspect(c *gin.Context) {
	var req InspectSubscriptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for inspect subscriptions", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.inspector.Execute(c.Request.Context(), req.Text)
	if err != nil {
		if !errors.IsAppError(err) {
			h.logger.Errorw("failed to inspect subscriptions", "error", err)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
