package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentron-app/mentron-api/internal/models"
	"github.com/mentron-app/mentron-api/internal/service"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
	"github.com/mentron-app/mentron-api/pkg/response"
)

type calendarService interface {
	ListVisible(ctx context.Context, actor models.Actor, month *time.Time) ([]models.CalendarEvent, error)
	Create(ctx context.Context, actor models.Actor, req service.CreateEventRequest) (*models.CalendarEvent, error)
	Delete(ctx context.Context, actor models.Actor, eventID string) error
}

// CalendarHandler wires the calendar service to HTTP endpoints.
type CalendarHandler struct {
	service calendarService
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(service calendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// List godoc
// @Summary List calendar events visible to the caller
// @Tags Calendar
// @Produce json
// @Param month query string false "Month (YYYY-MM)"
// @Success 200 {object} response.Envelope
// @Router /calendar/events [get]
func (h *CalendarHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var month *time.Time
	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid month format, expected YYYY-MM"))
			return
		}
		month = &parsed
	}

	events, err := h.service.ListVisible(c.Request.Context(), actor, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Create godoc
// @Summary Create a calendar event
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body service.CreateEventRequest true "Event"
// @Success 201 {object} response.Envelope
// @Router /calendar/events [post]
func (h *CalendarHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload"))
		return
	}
	event, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Delete godoc
// @Summary Delete a calendar event
// @Tags Calendar
// @Produce json
// @Param id path string true "Event ID"
// @Success 204
// @Router /calendar/events/{id} [delete]
func (h *CalendarHandler) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
