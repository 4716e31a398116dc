package handlers

import (
	"errors"
	"net/http"
	"strings"

	"cardfeed/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ChannelHandler struct {
	db *gorm.DB
}

func NewChannelHandler(conn *gorm.DB) *ChannelHandler {
	return &ChannelHandler{db: conn}
}

// List 全部频道列表
func (h *ChannelHandler) List(c *gin.Context) {
	var channels []models.Channel
	h.db.Order("id ASC").Find(&channels)
	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

type createChannelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create 新建频道，名称全局唯一
func (h *ChannelHandler) Create(c *gin.Context) {
	var req createChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(strings.ToLower(req.Name))
	if name == "" {
		Fail(c, http.StatusBadRequest, "name is required")
		return
	}

	channel := models.Channel{
		Name:        name,
		Description: req.Description,
	}
	if err := h.db.Create(&channel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Fail(c, http.StatusConflict, "channel already exists")
			return
		}
		Fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"channel": channel})
}
