package comments

import (
	"fmt"
	"testing"
	"time"

	"cardfeed/internal/db"
	"cardfeed/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// sqlite 单写者，限制为单连接让并发事务排队而不是报 busy
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(conn))
	return conn
}

func createUser(t *testing.T, conn *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	require.NoError(t, conn.Create(&user).Error)
	return &user
}

func createPost(t *testing.T, conn *gorm.DB, author *models.User) *models.Post {
	t.Helper()

	post := models.Post{
		Pid:       fmt.Sprintf("p%07d", time.Now().UnixNano()%10000000),
		UserID:    author.ID,
		Content:   "post body",
		MediaType: models.MediaTypeText,
	}
	require.NoError(t, conn.Create(&post).Error)
	return &post
}

func createComment(t *testing.T, conn *gorm.DB, user *models.User, post *models.Post, parentID *uint, content string) *models.Comment {
	t.Helper()

	comment := models.Comment{
		PostID:   post.ID,
		UserID:   user.ID,
		ParentID: parentID,
		Content:  content,
	}
	require.NoError(t, conn.Create(&comment).Error)
	return &comment
}

func countComments(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, conn.Model(&models.Comment{}).Count(&count).Error)
	return count
}
