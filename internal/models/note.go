package models

import "time"

// Note is a free-form categorized scratch entry.
type Note struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Text      string    `gorm:"not null" json:"text"`
	Category  string    `gorm:"size:32;default:GENERAL" json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
