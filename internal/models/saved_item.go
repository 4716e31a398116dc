package models

import (
	"time"
)

// SavedItem 收藏模型 - 用户保存的外部内容条目
type SavedItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_user_external" json:"user_id"`
	ExternalID string    `gorm:"size:32;not null;uniqueIndex:idx_user_external" json:"external_id"`
	Feed       string    `gorm:"size:64" json:"feed"` // 来源板块
	Title      string    `gorm:"not null" json:"title"`
	URL        string    `json:"url"`
	Thumbnail  string    `json:"thumbnail"`
	Author     string    `gorm:"size:64" json:"author"`
	CreatedAt  time.Time `json:"created_at"`
}
