package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"reportflow/database"
	"reportflow/policy"
	"reportflow/utils"
)

// AuthMiddleware validates JWT tokens and resolves the acting identity.
// The user record is re-fetched on every request so role or structure unit
// changes take effect immediately on the next call; nothing beyond the user
// identifier is trusted from the token itself.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		var user database.User
		if err := database.DB.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			}
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("name", user.Name)
		c.Set("email", user.Email)
		c.Set("role", user.Role)
		c.Set("structureUnit", user.StructureUnit)

		c.Next()
	}
}

// RequirePermission gates a route on the central permission matrix
func RequirePermission(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		if !policy.Allows(role.(string), action) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}
