package handlers

import (
	"errors"
	"net/http"
	"strings"

	"cardfeed/internal/auth"
	"cardfeed/internal/middleware"
	"cardfeed/internal/models"
	"cardfeed/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db     *gorm.DB
	tokens *auth.Manager
}

func NewAuthHandler(conn *gorm.DB, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{db: conn, tokens: tokens}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register 注册并直接登录
func (h *AuthHandler) Register(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	parts := strings.Split(req.Email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		Fail(c, http.StatusBadRequest, "invalid email")
		return
	}
	if len(req.Password) < 6 {
		Fail(c, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	// 未提供用户名时取邮箱前缀
	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = parts[0]
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	user := models.User{
		Username: username,
		Email:    req.Email,
		Password: hash,
	}
	if err := h.db.Create(&user).Error; err != nil {
		// 只有唯一约束冲突才是 409，其它存储错误一律 500
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Fail(c, http.StatusConflict, "email already registered")
			return
		}
		Fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	if !h.setTokenCookie(c, user.ID) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login 校验密码并下发 token Cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", strings.TrimSpace(req.Email)).First(&user).Error; err != nil {
		Fail(c, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		Fail(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if !h.setTokenCookie(c, user.ID) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout 清除 token Cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me 返回当前登录用户
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.CurrentUser(c)})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, userID uint) bool {
	token, err := h.tokens.Issue(userID)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "internal server error")
		return false
	}
	c.SetCookie(auth.CookieName, token, int(auth.TokenTTL.Seconds()), "/", "", false, true)
	return true
}
