package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mentron-app/mentron-api/internal/models"
	"github.com/mentron-app/mentron-api/internal/repository"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
	"github.com/mentron-app/mentron-api/pkg/response"
)

type hierarchyService interface {
	ListMembers(ctx context.Context, actor models.Actor, filter repository.MemberFilter) ([]models.GroupMember, *models.Pagination, error)
}

// HierarchyHandler wires the member roster to HTTP.
type HierarchyHandler struct {
	service hierarchyService
}

// NewHierarchyHandler constructs the handler.
func NewHierarchyHandler(service hierarchyService) *HierarchyHandler {
	return &HierarchyHandler{service: service}
}

// ListMembers godoc
// @Summary List group members within the caller's scope
// @Tags Hierarchy
// @Produce json
// @Param department query string false "Department filter"
// @Param year query int false "Year filter"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /hierarchy/members [get]
func (h *HierarchyHandler) ListMembers(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	filter := repository.MemberFilter{
		Department: strings.TrimSpace(c.Query("department")),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid year"))
			return
		}
		filter.Year = year
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "50"))

	members, pagination, err := h.service.ListMembers(c.Request.Context(), actor, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, members, pagination)
}
