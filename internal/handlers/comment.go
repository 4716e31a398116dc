package handlers

import (
	"net/http"
	"strconv"

	"cardfeed/internal/comments"
	"cardfeed/internal/middleware"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	store *comments.Store
}

func NewCommentHandler(store *comments.Store) *CommentHandler {
	return &CommentHandler{store: store}
}

// List 全部评论，按帖子分组为嵌套回复树，各层最新在前
func (h *CommentHandler) List(c *gin.Context) {
	flat, err := h.store.ListAll()
	if err != nil {
		FailFromCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": comments.Assemble(flat)})
}

type createCommentRequest struct {
	Content  string `json:"content"`
	PostID   uint   `json:"post_id"`
	ParentID *uint  `json:"parent_id"`
}

// Create 发表评论或回复
func (h *CommentHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.store.Create(comments.CreateInput{
		Content:  req.Content,
		UserID:   user.ID,
		PostID:   req.PostID,
		ParentID: req.ParentID,
	})
	if err != nil {
		FailFromCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// Delete 级联删除评论及其全部后代回复
func (h *CommentHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("commentId"))
	if err != nil || id <= 0 {
		Fail(c, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.store.DeleteTree(uint(id), user.ID); err != nil {
		FailFromCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
