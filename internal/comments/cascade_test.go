package comments

import (
	"errors"
	"testing"

	"cardfeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// buildTree root + 5 个后代（两层），返回根评论
func buildTree(t *testing.T, conn *gorm.DB, user *models.User, post *models.Post) *models.Comment {
	t.Helper()
	root := createComment(t, conn, user, post, nil, "root")
	c1 := createComment(t, conn, user, post, &root.ID, "child 1")
	c2 := createComment(t, conn, user, post, &root.ID, "child 2")
	createComment(t, conn, user, post, &c1.ID, "grandchild 1")
	createComment(t, conn, user, post, &c1.ID, "grandchild 2")
	createComment(t, conn, user, post, &c2.ID, "grandchild 3")
	return root
}

func TestDeleteTreeCascades(t *testing.T) {
	conn := newTestDB(t)
	store := NewStore(conn)
	user := createUser(t, conn, "alice")
	post := createPost(t, conn, user)

	root := buildTree(t, conn, user, post)
	bystander := createComment(t, conn, user, post, nil, "unrelated")

	require.Equal(t, int64(7), countComments(t, conn))

	// 删除根及其 5 个后代，恰好 6 行
	require.NoError(t, store.DeleteTree(root.ID, user.ID))
	assert.Equal(t, int64(1), countComments(t, conn))

	// 无悬挂引用
	var dangling int64
	conn.Model(&models.Comment{}).Where("parent_id IS NOT NULL").Count(&dangling)
	assert.Equal(t, int64(0), dangling)

	var survivor models.Comment
	require.NoError(t, conn.First(&survivor, bystander.ID).Error)
}

func TestDeleteTreeMidLevel(t *testing.T) {
	conn := newTestDB(t)
	store := NewStore(conn)
	user := createUser(t, conn, "alice")
	post := createPost(t, conn, user)

	root := createComment(t, conn, user, post, nil, "root")
	mid := createComment(t, conn, user, post, &root.ID, "mid")
	createComment(t, conn, user, post, &mid.ID, "leaf")

	require.NoError(t, store.DeleteTree(mid.ID, user.ID))

	// 根保留，中层及叶子删除
	assert.Equal(t, int64(1), countComments(t, conn))
	var remaining models.Comment
	require.NoError(t, conn.First(&remaining, root.ID).Error)
}

func TestDeleteTreeForbidden(t *testing.T) {
	conn := newTestDB(t)
	store := NewStore(conn)
	author := createUser(t, conn, "alice")
	stranger := createUser(t, conn, "mallory")
	post := createPost(t, conn, author)

	root := buildTree(t, conn, author, post)
	before := countComments(t, conn)

	err := store.DeleteTree(root.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// 存储保持原样
	assert.Equal(t, before, countComments(t, conn))
}

func TestDeleteTreePostAuthorMayDelete(t *testing.T) {
	conn := newTestDB(t)
	store := NewStore(conn)
	postAuthor := createUser(t, conn, "alice")
	commenter := createUser(t, conn, "bob")
	post := createPost(t, conn, postAuthor)

	comment := createComment(t, conn, commenter, post, nil, "rude comment")

	// 帖子作者可删除他人评论
	require.NoError(t, store.DeleteTree(comment.ID, postAuthor.ID))
	assert.Equal(t, int64(0), countComments(t, conn))
}

func TestDeleteTreeNotFound(t *testing.T) {
	conn := newTestDB(t)
	store := NewStore(conn)
	user := createUser(t, conn, "alice")

	err := store.DeleteTree(9999, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTreeConcurrentSameComment(t *testing.T) {
	conn := newTestDB(t)
	store := NewStore(conn)
	user := createUser(t, conn, "alice")
	post := createPost(t, conn, user)
	root := buildTree(t, conn, user, post)

	// 两个请求同时删同一条评论：恰好一个成功，另一个拿到 not found
	errCh := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			errCh <- store.DeleteTree(root.ID, user.ID)
		}()
	}

	var succeeded, notFound int
	for i := 0; i < 2; i++ {
		switch err := <-errCh; {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrNotFound):
			notFound++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, notFound)

	// 输家不会留下半删的子树
	assert.Equal(t, int64(0), countComments(t, conn))
}

func TestDeleteTreeIdempotentNotFound(t *testing.T) {
	conn := newTestDB(t)
	store := NewStore(conn)
	user := createUser(t, conn, "alice")
	post := createPost(t, conn, user)
	root := buildTree(t, conn, user, post)

	// 第一次成功，第二次拿到 not found，不会出现部分删除状态
	require.NoError(t, store.DeleteTree(root.ID, user.ID))
	err := store.DeleteTree(root.ID, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(0), countComments(t, conn))
}
