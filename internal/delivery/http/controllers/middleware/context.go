package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Sahil8130/E-Learning/internal/models"
)

const (
	ClientIDCtx    = "client_id"
	ClientRolesCtx = "client_roles"
)

// UserID extracts the authenticated principal's id set by AuthMiddleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(ClientIDCtx)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}

func Roles(c *gin.Context) []string {
	raw, exists := c.Get(ClientRolesCtx)
	if !exists {
		return nil
	}
	roles, _ := raw.([]string)
	return roles
}

func IsInstructor(c *gin.Context) bool {
	for _, r := range Roles(c) {
		if r == models.InstructorRole {
			return true
		}
	}
	return false
}
