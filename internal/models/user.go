package models

import "time"

// User is an account holder. Every other entity hangs off a user and is
// invisible to anyone else.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	Tasks   []Task  `gorm:"foreignKey:UserID" json:"-"`
	Dailies []Daily `gorm:"foreignKey:UserID" json:"-"`
	Goals   []Goal  `gorm:"foreignKey:UserID" json:"-"`
	Notes   []Note  `gorm:"foreignKey:UserID" json:"-"`
}
