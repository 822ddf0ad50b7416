package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentron-app/mentron-api/internal/middleware"
	"github.com/mentron-app/mentron-api/internal/models"
	"github.com/mentron-app/mentron-api/internal/service"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
	"github.com/mentron-app/mentron-api/pkg/response"
)

type analyticsService interface {
	Overview(ctx context.Context, actor models.Actor) (*models.AnalyticsOverview, bool, error)
}

type exportService interface {
	WeeklyReport(ctx context.Context, actor models.Actor, format string) (*service.ExportFile, error)
}

// AnalyticsHandler wires the analytics overview and its export to HTTP.
type AnalyticsHandler struct {
	analytics analyticsService
	exports   exportService
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(analytics analyticsService, exports exportService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, exports: exports}
}

// Overview godoc
// @Summary Rolling 7-day activity overview
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	overview, cacheHit, err := h.analytics.Overview(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, overview, nil, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Download the weekly activity report
// @Tags Analytics
// @Produce application/pdf
// @Produce text/csv
// @Param format query string false "pdf or csv" default(pdf)
// @Success 200 {file} binary
// @Router /analytics/export [get]
func (h *AnalyticsHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	file, err := h.exports.WeeklyReport(c.Request.Context(), actor, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
