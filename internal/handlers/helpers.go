package handlers

import (
	"github.com/gin-gonic/gin"

	"authgate/internal/middleware"
)

func getUserIDFromCtx(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
