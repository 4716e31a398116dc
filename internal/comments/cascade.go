package comments

import (
	"errors"
	"fmt"

	"cardfeed/internal/models"

	"gorm.io/gorm"
)

// DeleteTree 级联删除一条评论及其全部后代回复
// 仅评论作者或所在帖子作者可删除；整个子树在单个事务内删除，
// 并发删除同一评论时后到者在事务内查不到记录，得到 ErrNotFound
func (s *Store) DeleteTree(commentID, requesterID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
			}
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}

		// 授权：评论作者或帖子作者
		if comment.UserID != requesterID {
			var post models.Post
			if err := tx.First(&post, comment.PostID).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrStorage, err)
			}
			if post.UserID != requesterID {
				return fmt.Errorf("%w: not the comment or post author", ErrForbidden)
			}
		}

		ids, err := collectSubtree(tx, commentID)
		if err != nil {
			return err
		}

		if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrStorage) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// collectSubtree 逐层收集后代评论 ID（含根），广度优先
func collectSubtree(tx *gorm.DB, rootID uint) ([]uint, error) {
	ids := []uint{rootID}
	frontier := []uint{rootID}

	for len(frontier) > 0 {
		var children []uint
		err := tx.Model(&models.Comment{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		ids = append(ids, children...)
		frontier = children
	}
	return ids, nil
}
