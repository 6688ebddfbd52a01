package middlewares

import (
	"net/http"
	"strings"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/MrTch0o/APPUAIFOOD-sub000/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks the bearer token and, when roles are given, gates on them.
func AuthMiddleware(secret string, roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
			return
		}
		authenticate(c, strings.TrimPrefix(h, "Bearer "), secret, roles)
	}
}

// OptionalAuth sets the actor when a valid token is present and never aborts.
// Public endpoints use it to widen what an owner or admin can see.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if strings.HasPrefix(h, "Bearer ") {
			if claims, err := utils.ParseToken(strings.TrimPrefix(h, "Bearer "), secret); err == nil {
				setActor(c, claims)
			}
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, tokenStr, secret string, roles []entity.Role) {
	claims, err := utils.ParseToken(tokenStr, secret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
		return
	}
	setActor(c, claims)

	if len(roles) > 0 && !hasRole(entity.Role(claims.Role), roles) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
		return
	}
	c.Next()
}

func setActor(c *gin.Context, claims *utils.Claims) {
	c.Set("userId", claims.UserID)
	c.Set("role", claims.Role)
}

func hasRole(role entity.Role, allowed []entity.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
