package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"declara/internal/domain"
)

// Header names set by the external auth layer in front of this service.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

const actorKey = "actor"

// Actor reads the resolved identity headers into the request context.
// Authentication itself is external; requests without a role default to
// BROKER, the least privileged role.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := domain.Actor{Role: domain.RoleBroker}

		if raw := c.GetHeader(HeaderActorID); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				actor.ID = &id
			}
		}
		switch domain.ActorRole(c.GetHeader(HeaderActorRole)) {
		case domain.RoleOfficer:
			actor.Role = domain.RoleOfficer
		case domain.RoleAdmin:
			actor.Role = domain.RoleAdmin
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// GetActor returns the actor resolved for the current request.
func GetActor(c *gin.Context) domain.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Actor{Role: domain.RoleBroker}
}
