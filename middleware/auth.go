package middleware

import (
	"strings"

	"kalongo-backend/models"
	"kalongo-backend/services"
	"kalongo-backend/utils"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// RequireAuth validates the Bearer token and loads the acting user (with
// role permissions and department) into the request context.
func RequireAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, 401, "missing bearer token")
			c.Abort()
			return
		}
		user, err := auth.UserFromToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.JSONAppError(c, err)
			c.Abort()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth, or nil on
// unauthenticated routes.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
