package handler

import (
	"net/http"
	"strings"

	"simple-board/internal/middleware"
	"simple-board/internal/models"
	"simple-board/internal/session"
	"simple-board/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type updateProfileReq struct {
	Username string `json:"username" binding:"required"`
}

// UpdateProfile changes the acting user's display name.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req updateProfileReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		if err := util.ValidateUsername(req.Username); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}

		if err := db.Model(user).Update("username", req.Username).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update failed")
			return
		}

		util.Success(c, util.Response{"message": "profile updated"})
	}
}

type changePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword verifies the old password before storing a new hash.
func ChangePassword(db *gorm.DB, bcryptCost int) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req changePasswordReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
			return
		}

		if !util.CheckPassword(req.OldPassword, user.PasswordHash) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "wrong password")
			return
		}
		if err := util.ValidatePassword(req.NewPassword); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}

		hash, err := util.HashPassword(req.NewPassword, bcryptCost)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "password change failed")
			return
		}
		if err := db.Model(user).Update("password_hash", hash).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "password change failed")
			return
		}

		util.Success(c, util.Response{"message": "password changed"})
	}
}

type deleteAccountReq struct {
	Password string `json:"password" binding:"required"`
}

// DeleteAccount removes the user and everything they own (posts, comments,
// sessions, audit rows) in one transaction, then clears the cookie.
func DeleteAccount(db *gorm.DB, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req deleteAccountReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
			return
		}
		if !util.CheckPassword(req.Password, user.PasswordHash) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "wrong password")
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("author_id = ?", user.ID).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			// comments left under the user's posts by other members
			if err := tx.Where("post_id IN (?)",
				tx.Model(&models.Post{}).Select("id").Where("author_id = ?", user.ID),
			).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("author_id = ?", user.ID).Delete(&models.Post{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.Session{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.AuditLog{}).Error; err != nil {
				return err
			}
			return tx.Delete(user).Error
		})
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "account deletion failed")
			return
		}

		if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
			_ = sessions.Destroy(token)
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)

		util.Success(c, util.Response{"message": "account deleted"})
	}
}
