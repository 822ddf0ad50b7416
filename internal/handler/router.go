package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mentron-app/mentron-api/internal/middleware"
	"github.com/mentron-app/mentron-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Notifications *NotificationHandler
	Calendar      *CalendarHandler
	Search        *SearchHandler
	Analytics     *AnalyticsHandler
	Hierarchy     *HierarchyHandler
	Settings      *SettingsHandler
	Metrics       *MetricsHandler
}

// RegisterRoutes mounts all API routes. Authenticated routes run the token
// check followed by role resolution; a request without a role record never
// reaches a handler.
func RegisterRoutes(r *gin.Engine, prefix string, tokens *service.TokenService, identity *service.IdentityService, h Handlers) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Health)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)
	api.Use(middleware.JWT(tokens))
	api.Use(middleware.Actor(identity))
	api.Use(middleware.WithResponseMeta())

	api.GET("/notifications", h.Notifications.List)
	api.PATCH("/notifications/read-all", h.Notifications.MarkAllRead)
	api.PATCH("/notifications/:id/read", h.Notifications.MarkRead)
	api.POST("/notifications/announce", h.Notifications.Announce)

	api.GET("/calendar/events", h.Calendar.List)
	api.POST("/calendar/events", h.Calendar.Create)
	api.DELETE("/calendar/events/:id", h.Calendar.Delete)

	api.GET("/search", h.Search.Search)

	api.GET("/analytics/overview", h.Analytics.Overview)
	api.GET("/analytics/export", h.Analytics.Export)

	api.GET("/hierarchy/members", h.Hierarchy.ListMembers)

	api.GET("/settings/notifications", h.Settings.Get)
	api.PUT("/settings/notifications", h.Settings.Update)
}
