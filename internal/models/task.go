package models

import "time"

// Task is a one-shot obligation ("chaos" task). It is consumed — deleted —
// when a session commits to it and succeeds.
type Task struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Text      string    `gorm:"not null" json:"text"`
	Time      *string   `gorm:"size:8" json:"time"` // optional "HH:MM" schedule
	CreatedAt time.Time `json:"created_at"`
}
