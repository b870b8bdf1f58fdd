package middleware

import (
	"net/http"
	"strings"

	"hotelops/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthStaffMiddleware.
const (
	StaffIDKey = "staffID"
	CapsKey    = "caps"
)

// JWTAuthStaffMiddleware validates the staff bearer token and stores the staff
// ID and capability list in the context.
func JWTAuthStaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ParseStaffToken(tokenString)
		if err != nil {
			zap.L().Debug("staff token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(StaffIDKey, claims.Subject)
		c.Set(CapsKey, claims.Caps)
		c.Next()
	}
}

// StaffID returns the authenticated staff member, if any.
func StaffID(c *gin.Context) string {
	return c.GetString(StaffIDKey)
}
