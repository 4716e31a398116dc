package models

import (
	"time"
)

// Ticker 用户自选股，symbol 每用户唯一
type Ticker struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_symbol" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Symbol    string    `gorm:"size:12;not null;uniqueIndex:idx_user_symbol" json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
}
