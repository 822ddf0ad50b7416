package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentron-app/mentron-api/internal/models"
	"github.com/mentron-app/mentron-api/internal/service"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
	"github.com/mentron-app/mentron-api/pkg/response"
)

type notificationService interface {
	List(ctx context.Context, actor models.Actor) (*models.NotificationFeed, error)
	MarkRead(ctx context.Context, actor models.Actor, notificationID string) error
	MarkAllRead(ctx context.Context, actor models.Actor) error
	Announce(ctx context.Context, actor models.Actor, req service.AnnounceRequest) (*service.AnnounceResult, error)
}

// NotificationHandler wires the notification lifecycle to HTTP endpoints.
type NotificationHandler struct {
	service notificationService
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(service notificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List godoc
// @Summary List the caller's notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	feed, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, feed, nil)
}

// MarkRead godoc
// @Summary Mark one notification as read
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 204
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.MarkRead(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// MarkAllRead godoc
// @Summary Mark every unread notification as read
// @Tags Notifications
// @Produce json
// @Success 204
// @Router /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.MarkAllRead(c.Request.Context(), actor); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Announce godoc
// @Summary Broadcast an announcement to an audience
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body service.AnnounceRequest true "Announcement"
// @Success 201 {object} response.Envelope
// @Router /notifications/announce [post]
func (h *NotificationHandler) Announce(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.AnnounceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload"))
		return
	}
	result, err := h.service.Announce(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
