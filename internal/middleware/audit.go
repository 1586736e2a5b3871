package middleware

import (
	"net/http"

	"simple-board/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Audit records mutating requests made by logged-in users. It runs after the
// handler so the final status is captured; reads are not logged.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet {
			return
		}

		var userID string
		if v, ok := c.Get("currentUser"); ok {
			if user, ok := v.(*models.User); ok && user != nil {
				userID = user.ID
			}
		}
		if userID == "" {
			return
		}

		entry := models.AuditLog{
			UserID:    userID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		_ = db.Create(&entry).Error
	}
}
