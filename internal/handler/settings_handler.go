package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentron-app/mentron-api/internal/models"
	"github.com/mentron-app/mentron-api/internal/repository"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
	"github.com/mentron-app/mentron-api/pkg/response"
)

type settingsService interface {
	Get(ctx context.Context, actor models.Actor) (*repository.NotificationPrefs, error)
	Update(ctx context.Context, actor models.Actor, prefs repository.NotificationPrefs) error
}

// SettingsHandler wires the self-managed admin settings to HTTP.
type SettingsHandler struct {
	service settingsService
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(service settingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Get godoc
// @Summary Read the caller's notification settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/notifications [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	prefs, err := h.service.Get(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prefs, nil)
}

// Update godoc
// @Summary Update the caller's notification settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body repository.NotificationPrefs true "Settings"
// @Success 204
// @Router /settings/notifications [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var prefs repository.NotificationPrefs
	if err := c.ShouldBindJSON(&prefs); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload"))
		return
	}
	if err := h.service.Update(c.Request.Context(), actor, prefs); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
