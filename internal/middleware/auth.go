package middleware

import (
	"errors"
	"net/http"

	"simple-board/internal/models"
	"simple-board/internal/session"
	"simple-board/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "session_id"

// Auth resolves the session cookie, loads the user and puts it into the
// context as "currentUser". Each authenticated request extends the session
// (sliding TTL).
func Auth(store session.Store, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			c.Abort()
			return
		}

		userID, err := store.Resolve(token)
		if err != nil {
			if errors.Is(err, session.ErrInvalid) {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, please log in again")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "session lookup failed")
			}
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// session outlived the account
				_ = store.Destroy(token)
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user no longer exists")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "user lookup failed")
			}
			c.Abort()
			return
		}

		_ = store.Extend(token)

		c.Set("currentUser", &user)
		c.Next()
	}
}
