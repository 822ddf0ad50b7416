package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentron-app/mentron-api/internal/models"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
	"github.com/mentron-app/mentron-api/pkg/response"
)

type searchService interface {
	Search(ctx context.Context, actor models.Actor, query string) (*models.SearchResult, error)
}

// SearchHandler wires the search aggregator to HTTP.
type SearchHandler struct {
	service searchService
}

// NewSearchHandler constructs the handler.
func NewSearchHandler(service searchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search godoc
// @Summary Search materials and groups
// @Tags Search
// @Produce json
// @Param q query string false "Free text query"
// @Success 200 {object} response.Envelope
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	result, err := h.service.Search(c.Request.Context(), actor, c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
