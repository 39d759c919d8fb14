package handlers

import (
	"ebd_gestao/internal/domain/entities"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

// actorFromRequest reads the operator identity set by the back-office gateway.
func actorFromRequest(c *gin.Context) entities.Actor {
	return entities.Actor{
		ID:   strings.TrimSpace(c.GetHeader(HeaderActorID)),
		Role: entities.Role(strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderActorRole)))),
	}
}
