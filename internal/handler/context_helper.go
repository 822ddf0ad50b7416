package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mentron-app/mentron-api/internal/middleware"
	"github.com/mentron-app/mentron-api/internal/models"
)

func actorFromContext(c *gin.Context) (models.Actor, bool) {
	value, exists := c.Get(middleware.ContextActorKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := value.(*models.Actor)
	if !ok || actor == nil {
		return models.Actor{}, false
	}
	return *actor, true
}
