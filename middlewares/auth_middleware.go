package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/briankang0314/machsuri-server/models"
	"github.com/briankang0314/machsuri-server/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware walks the token through its states: missing header is a 400,
// a bad or expired token a 401, an unresolvable subject a 404. On success the
// user row and its role are attached to the context for downstream gates.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("token missing"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid authorization header format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil || claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token"))
			c.Abort()
			return
		}

		var user models.User
		if err := db.Where("is_deleted = ?", false).First(&user, claims.UserID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Set("user", user)
		c.Next()
	}
}

// WebSocketAuthMiddleware reads the token from the query string because
// browsers cannot set headers on websocket upgrade requests. The subject is
// resolved against the user table like AuthMiddleware does, so a token minted
// before a soft delete cannot open a stream.
func WebSocketAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil || claims == nil || claims.UserID == 0 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		var user models.User
		if err := db.Where("is_deleted = ?", false).First(&user, claims.UserID).Error; err != nil {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Next()
	}
}
