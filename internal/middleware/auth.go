package middleware

import (
	"net/http"

	"cardfeed/internal/auth"
	"cardfeed/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const CheckUserKey = "user"

// LoadUser retrieves user from the token cookie and sets to context
func LoadUser(conn *gorm.DB, tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(auth.CookieName)
		if err == nil && tokenString != "" {
			if userID, err := tokens.Parse(tokenString); err == nil {
				var user models.User
				if result := conn.First(&user, userID); result.Error == nil {
					c.Set(CheckUserKey, &user)
				}
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// CurrentUser 取出 LoadUser 放入上下文的用户，受保护路由内必然存在
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(CheckUserKey).(*models.User)
}
