package middlewares

import (
	"errors"
	"net/http"

	"github.com/briankang0314/machsuri-server/utils"
	"github.com/gin-gonic/gin"
)

// RoleCheck allows the request through only when the authenticated user's
// role is in the whitelist.
func RoleCheck(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		role, _ := roleVal.(string)
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, errors.New("insufficient role"))
		c.Abort()
	}
}
