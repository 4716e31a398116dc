package comments

import (
	"errors"
	"fmt"
	"strings"

	"cardfeed/internal/models"

	"gorm.io/gorm"
)

// Store 评论持久化，句柄由启动时注入
type Store struct {
	db *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{db: conn}
}

// CreateInput 发表评论/回复的入参
type CreateInput struct {
	Content  string
	UserID   uint
	PostID   uint
	ParentID *uint
}

// Create 校验并写入一条评论，返回带作者信息的记录
// 内容为空白或帖子不存在返回 ErrValidation，父评论不存在返回 ErrNotFound
func (s *Store) Create(input CreateInput) (*models.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content must not be empty", ErrValidation)
	}
	if input.PostID == 0 {
		return nil, fmt.Errorf("%w: post_id is required", ErrValidation)
	}

	var post models.Post
	if err := s.db.First(&post, input.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post %d does not exist", ErrValidation, input.PostID)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if input.ParentID != nil {
		var parent models.Comment
		if err := s.db.First(&parent, *input.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: parent comment %d does not exist", ErrNotFound, *input.ParentID)
			}
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		// 回复必须挂在同一帖子下
		if parent.PostID != input.PostID {
			return nil, fmt.Errorf("%w: parent comment belongs to another post", ErrValidation)
		}
	}

	comment := models.Comment{
		PostID:   input.PostID,
		UserID:   input.UserID,
		ParentID: input.ParentID,
		Content:  content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	// 回查作者信息，便于前端立即展示
	if err := s.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &comment, nil
}

// Get 按 ID 取单条评论（含作者）
func (s *Store) Get(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &comment, nil
}

// ListAll 返回全部评论的平铺集合（含作者），树由 Assemble 构建
func (s *Store) ListAll() ([]models.Comment, error) {
	var list []models.Comment
	if err := s.db.Preload("User").Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return list, nil
}

// ListByPost 返回某帖子下的平铺评论集合
func (s *Store) ListByPost(postID uint) ([]models.Comment, error) {
	var list []models.Comment
	if err := s.db.Preload("User").Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return list, nil
}

// Delete 删除单条评论，不存在返回 ErrNotFound
func (s *Store) Delete(id uint) error {
	result := s.db.Delete(&models.Comment{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: comment %d", ErrNotFound, id)
	}
	return nil
}

// ReparentChildren 将直接子评论批量改挂到 newParentID（nil 表示提升为根评论）
// 孤儿提升策略使用，级联删除不经过这里
func (s *Store) ReparentChildren(id uint, newParentID *uint) error {
	err := s.db.Model(&models.Comment{}).
		Where("parent_id = ?", id).
		Update("parent_id", newParentID).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}
