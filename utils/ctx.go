package utils

import (
	"strconv"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/gin-gonic/gin"
)

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}

func CurrentRole(c *gin.Context) entity.Role {
	if v, ok := c.Get("role"); ok {
		if s, ok := v.(string); ok {
			return entity.Role(s)
		}
	}
	return ""
}

// CurrentActor is the authenticated caller set by AuthMiddleware.
func CurrentActor(c *gin.Context) entity.Actor {
	return entity.Actor{UserID: CurrentUserID(c), Role: CurrentRole(c)}
}

// ParamID parses a positive numeric path param.
func ParamID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// Page reads ?page= and ?limit= with the same clamping the order lists use.
func Page(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return page, limit
}
