package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/profast/parcel-api/internal/middleware"
	"github.com/profast/parcel-api/internal/models"
	"github.com/profast/parcel-api/internal/services"
)

// WebSocketHandler streams domain events to a connected admin. It runs behind
// AdminOnly, which loads the caller.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.RoleUser
		if user := middleware.CallerUser(c); user != nil {
			role = user.Role
		}

		services.HandleWebSocket(hub, c.Writer, c.Request, middleware.CallerEmail(c), role)
	}
}
