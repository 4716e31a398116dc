package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cardfeed/internal/middleware"
	"cardfeed/internal/models"
	"cardfeed/internal/services"
	"cardfeed/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExploreHandler struct {
	db      *gorm.DB
	network *services.ContentNetworkService
}

func NewExploreHandler(conn *gorm.DB, network *services.ContentNetworkService) *ExploreHandler {
	return &ExploreHandler{db: conn, network: network}
}

// Listing 浏览外部内容网络的某个板块
func (h *ExploreHandler) Listing(c *gin.Context) {
	feed := c.Param("feed")

	limit := utils.ParsePositiveInt(c.Query("limit"), 25)

	items, err := h.network.FetchListing(feed, limit)
	if err != nil {
		Fail(c, http.StatusBadGateway, "content network unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{"feed": feed, "items": items})
}

// ListSaved 当前用户保存的外部条目
func (h *ExploreHandler) ListSaved(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var items []models.SavedItem
	h.db.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&items)
	c.JSON(http.StatusOK, gin.H{"saved": items})
}

type saveItemRequest struct {
	ExternalID string `json:"external_id"`
	Feed       string `json:"feed"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Thumbnail  string `json:"thumbnail"`
	Author     string `json:"author"`
}

// Save 保存一条外部内容
func (h *ExploreHandler) Save(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req saveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.ExternalID) == "" || strings.TrimSpace(req.Title) == "" {
		Fail(c, http.StatusBadRequest, "external_id and title are required")
		return
	}

	item := models.SavedItem{
		UserID:     user.ID,
		ExternalID: req.ExternalID,
		Feed:       req.Feed,
		Title:      req.Title,
		URL:        req.URL,
		Thumbnail:  req.Thumbnail,
		Author:     req.Author,
	}
	if err := h.db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Fail(c, http.StatusConflict, "item already saved")
			return
		}
		Fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"saved": item})
}

// Unsave 删除保存的条目
func (h *ExploreHandler) Unsave(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		Fail(c, http.StatusBadRequest, "invalid id")
		return
	}

	result := h.db.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.SavedItem{})
	if result.RowsAffected == 0 {
		Fail(c, http.StatusNotFound, "saved item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}
