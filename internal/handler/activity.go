package handler

import (
	"net/http"

	"simple-board/internal/models"
	"simple-board/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListActivity returns the acting user's recent audit entries, newest first.
func ListActivity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var entries []models.AuditLog
		err := db.Where("user_id = ?", user.ID).
			Order("created_at DESC, id DESC").
			Limit(100).
			Find(&entries).Error
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load activity")
			return
		}

		items := make([]gin.H, 0, len(entries))
		for _, e := range entries {
			items = append(items, gin.H{
				"method":     e.Method,
				"path":       e.Path,
				"status":     e.Status,
				"ip":         e.IP,
				"created_at": e.CreatedAt,
			})
		}

		util.Success(c, util.Response{"activity": items})
	}
}
