package models

import (
	"time"
)

// 帖子媒体类型
const (
	MediaTypeText  = "text"
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Pid       string    `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ChannelID *uint     `gorm:"index" json:"channel_id"` // Nullable, null = personal feed
	Channel   *Channel  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"channel,omitempty"`
	Content   string    `gorm:"type:text" json:"content"`
	MediaURL  string    `json:"media_url"` // Optional
	MediaType string    `gorm:"size:10;default:'text'" json:"media_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	CommentCount int `gorm:"-" json:"comment_count"`
}
