package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
)

// AdminMiddleware creates a Gin middleware handler that allows only users
// with the admin role through. It must run after AuthMiddleware.
func AdminMiddleware(userSvc portssvc.UserReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			logger.Error("Admin check without authenticated user")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := userSvc.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("Admin check failed to load user", "error", err)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		if !user.IsAdmin() {
			logger.Warn("Non-admin user attempted admin route")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Next()
	}
}
