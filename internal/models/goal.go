package models

import "time"

// Goal is a category tag attachable to dailies. Deleting a goal detaches
// its dailies (GoalID set to NULL); it never deletes them.
type Goal struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Color     string    `gorm:"size:64" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
