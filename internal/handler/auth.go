package handler

import (
	"net/http"
	"time"

	"simple-board/internal/middleware"
	"simple-board/internal/service"
	"simple-board/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves signup/login/logout and owns the session cookie.
type AuthHandler struct {
	Auth *service.AuthService
	TTL  time.Duration
}

func NewAuthHandler(auth *service.AuthService, ttl time.Duration) *AuthHandler {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &AuthHandler{Auth: auth, TTL: ttl}
}

type signupReq struct {
	ID       string `json:"id" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	user, err := h.Auth.Signup(req.ID, req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "user created successfully",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

type loginReq struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	token, user, err := h.Auth.Login(req.ID, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.TTL.Seconds()), "/", "", false, true)

	util.Success(c, util.Response{
		"message": "login successful",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// Logout destroys the session if one exists and clears the cookie either way.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := h.Auth.Logout(token); err != nil {
			fail(c, err)
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)

	util.Success(c, util.Response{"message": "logout successful"})
}
