package handler

import (
	"simple-board/internal/util"

	"github.com/gin-gonic/gin"
)

// GetMe returns the acting user (requires middleware.Auth).
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"created_at": user.CreatedAt,
		},
	})
}
