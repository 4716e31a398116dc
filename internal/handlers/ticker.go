package handlers

import (
	"errors"
	"net/http"
	"strings"

	"cardfeed/internal/middleware"
	"cardfeed/internal/models"
	"cardfeed/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TickerHandler struct {
	db     *gorm.DB
	market *services.MarketDataService
}

func NewTickerHandler(conn *gorm.DB, market *services.MarketDataService) *TickerHandler {
	return &TickerHandler{db: conn, market: market}
}

// List 当前用户的自选股列表
func (h *TickerHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var tickers []models.Ticker
	h.db.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&tickers)
	c.JSON(http.StatusOK, gin.H{"tickers": tickers})
}

type createTickerRequest struct {
	Symbol string `json:"symbol"`
}

// Create 添加自选股
func (h *TickerHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createTickerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" || len(symbol) > 12 {
		Fail(c, http.StatusBadRequest, "invalid symbol")
		return
	}

	ticker := models.Ticker{
		UserID: user.ID,
		Symbol: symbol,
	}
	if err := h.db.Create(&ticker).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Fail(c, http.StatusConflict, "symbol already watched")
			return
		}
		Fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ticker": ticker})
}

// Delete 移除自选股
func (h *TickerHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	symbol := strings.ToUpper(c.Param("symbol"))

	result := h.db.Where("user_id = ? AND symbol = ?", user.ID, symbol).Delete(&models.Ticker{})
	if result.RowsAffected == 0 {
		Fail(c, http.StatusNotFound, "symbol not watched")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ticker removed"})
}

// Quote 查询单只股票的实时报价（走外部行情 API，带缓存）
func (h *TickerHandler) Quote(c *gin.Context) {
	symbol := c.Param("symbol")

	quote, err := h.market.GetQuote(symbol)
	if err != nil {
		Fail(c, http.StatusBadGateway, "market data unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{"quote": quote})
}
