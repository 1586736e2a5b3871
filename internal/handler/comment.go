package handler

import (
	"net/http"

	"simple-board/internal/service"
	"simple-board/internal/util"

	"github.com/gin-gonic/gin"
)

// CommentHandler maps HTTP requests onto the comment service.
type CommentHandler struct {
	Comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{Comments: comments}
}

type createCommentReq struct {
	Content string `json:"content" binding:"required"`
	PostID  uint   `json:"post_id" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	comment, err := h.Comments.Create(req.Content, req.PostID, user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"message":    "comment created successfully",
		"comment_id": comment.ID,
	})
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comment, err := h.Comments.Get(id)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{"comment": comment})
}

func (h *CommentHandler) ByPost(c *gin.Context) {
	postID, ok := parseID(c, "post_id")
	if !ok {
		return
	}

	comments, err := h.Comments.ListByPost(postID)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{"comments": comments})
}

func (h *CommentHandler) ByUser(c *gin.Context) {
	comments, err := h.Comments.ListByUser(c.Param("user_id"))
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{"comments": comments})
}

type updateCommentReq struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if err := h.Comments.Update(id, req.Content, user.ID); err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{"message": "comment updated successfully"})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.Comments.Delete(id, user.ID); err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{"message": "comment deleted successfully"})
}
