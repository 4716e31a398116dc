package handlers

import (
	"errors"
	"log"
	"net/http"

	"cardfeed/internal/comments"

	"github.com/gin-gonic/gin"
)

// Fail 统一错误响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// FailFromCommentError 将评论子系统错误分级映射为 HTTP 状态码
// 未识别的错误按存储错误处理：记日志，对外只返回通用信息
func FailFromCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, comments.ErrValidation):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, comments.ErrNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, comments.ErrForbidden):
		Fail(c, http.StatusForbidden, err.Error())
	default:
		log.Printf("storage error: %v", err)
		Fail(c, http.StatusInternalServerError, "internal server error")
	}
}
