package handler

import (
	"errors"
	"net/http"

	"simple-board/internal/models"
	"simple-board/internal/service"
	"simple-board/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user placed by middleware.Auth.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	return user, true
}

// fail maps a service error onto the HTTP envelope.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, err.Error())
	case errors.Is(err, service.ErrForbidden):
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "not authorized")
	case errors.Is(err, service.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		util.Error(c, http.StatusConflict, util.CodeConflict, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
	}
}
