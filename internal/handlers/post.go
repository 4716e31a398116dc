package handlers

import (
	"math"
	"net/http"
	"strconv"

	"cardfeed/internal/comments"
	"cardfeed/internal/middleware"
	"cardfeed/internal/models"
	"cardfeed/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct {
	db       *gorm.DB
	comments *comments.Store
}

func NewPostHandler(conn *gorm.DB, store *comments.Store) *PostHandler {
	return &PostHandler{db: conn, comments: store}
}

// fillCommentCounts 批量填充帖子的评论数量
func (h *PostHandler) fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	h.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}

type createPostRequest struct {
	Content   string `json:"content"`
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"`
	ChannelID *uint  `json:"channel_id"`
}

// Create 发布帖子到个人 Feed 或指定频道
func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Content == "" && req.MediaURL == "" {
		Fail(c, http.StatusBadRequest, "content or media_url is required")
		return
	}

	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = models.MediaTypeText
	}
	if mediaType != models.MediaTypeText && mediaType != models.MediaTypeImage && mediaType != models.MediaTypeVideo {
		Fail(c, http.StatusBadRequest, "media_type must be text, image or video")
		return
	}

	if req.ChannelID != nil {
		var channel models.Channel
		if err := h.db.First(&channel, *req.ChannelID).Error; err != nil {
			Fail(c, http.StatusBadRequest, "channel does not exist")
			return
		}
	}

	post := models.Post{
		Pid:       utils.RandStringBytesMaskImpr(8),
		UserID:    user.ID,
		ChannelID: req.ChannelID,
		Content:   req.Content,
		MediaURL:  req.MediaURL,
		MediaType: mediaType,
	}
	if err := h.db.Create(&post).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	h.db.Preload("User").Preload("Channel").First(&post, post.ID)
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// List 帖子流，最新在前，支持分页和频道过滤
func (h *PostHandler) List(c *gin.Context) {
	page := utils.ParsePositiveInt(c.Query("page"), 1)

	perPage := 30
	offset := (page - 1) * perPage

	query := h.db.Model(&models.Post{})

	// 频道过滤：?channel=tech，个人 Feed：?user=123
	if channelName := c.Query("channel"); channelName != "" {
		var channel models.Channel
		if err := h.db.Where("name = ?", channelName).First(&channel).Error; err != nil {
			Fail(c, http.StatusNotFound, "channel not found")
			return
		}
		query = query.Where("channel_id = ?", channel.ID)
	}
	if userIDStr := c.Query("user"); userIDStr != "" {
		if userID, err := strconv.Atoi(userIDStr); err == nil {
			query = query.Where("user_id = ?", userID)
		}
	}

	var total int64
	query.Count(&total)

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var posts []models.Post
	query.Preload("User").Preload("Channel").
		Order("created_at DESC, id DESC").
		Limit(perPage).
		Offset(offset).
		Find(&posts)

	h.fillCommentCounts(posts)

	c.JSON(http.StatusOK, gin.H{
		"posts":       posts,
		"page":        page,
		"total_pages": totalPages,
		"total":       total,
	})
}

// Detail 帖子详情，附带整棵评论树
func (h *PostHandler) Detail(c *gin.Context) {
	pid := c.Param("pid")

	var post models.Post
	if err := h.db.Preload("User").Preload("Channel").Where("pid = ?", pid).First(&post).Error; err != nil {
		Fail(c, http.StatusNotFound, "post not found")
		return
	}

	flat, err := h.comments.ListByPost(post.ID)
	if err != nil {
		FailFromCommentError(c, err)
		return
	}
	forest := comments.Assemble(flat)
	post.CommentCount = len(flat)

	c.JSON(http.StatusOK, gin.H{
		"post":         post,
		"content_html": utils.RenderMarkdown(post.Content),
		"comments":     forest[post.ID],
	})
}

// Delete 删除帖子（仅作者），帖子下的评论一并删除
func (h *PostHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	pid := c.Param("pid")

	var post models.Post
	if err := h.db.Where("pid = ?", pid).First(&post).Error; err != nil {
		Fail(c, http.StatusNotFound, "post not found")
		return
	}

	if post.UserID != user.ID {
		Fail(c, http.StatusForbidden, "not the post author")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		Fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}
