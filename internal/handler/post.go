package handler

import (
	"net/http"
	"strconv"

	"simple-board/internal/service"
	"simple-board/internal/util"

	"github.com/gin-gonic/gin"
)

// PostHandler maps HTTP requests onto the post service.
type PostHandler struct {
	Posts *service.PostService
}

func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{Posts: posts}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

type createPostReq struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (h *PostHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	post, err := h.Posts.Create(req.Title, req.Content, user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "post created successfully",
		"post_id": post.ID,
	})
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.Posts.Get(id)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{"post": detail})
}

func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	pageData, err := h.Posts.List(page, limit)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"posts":       pageData.Posts,
		"total":       pageData.Total,
		"page":        pageData.Page,
		"limit":       pageData.Limit,
		"total_pages": pageData.TotalPages,
	})
}

type updatePostReq struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *PostHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if err := h.Posts.Update(id, req.Title, req.Content, user.ID); err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{"message": "post updated successfully"})
}

func (h *PostHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.Posts.Delete(id, user.ID); err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{"message": "post deleted successfully"})
}

func (h *PostHandler) Search(c *gin.Context) {
	results, err := h.Posts.Search(c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{"posts": results})
}

func (h *PostHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	posts, err := h.Posts.Recent(limit)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{"posts": posts})
}

func (h *PostHandler) Popular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	posts, err := h.Posts.Popular(limit)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{"posts": posts})
}

func (h *PostHandler) ByUser(c *gin.Context) {
	posts, err := h.Posts.ListByUser(c.Param("user_id"))
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{"posts": posts})
}
