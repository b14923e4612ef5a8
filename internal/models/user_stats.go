package models

import "time"

// UserStats is the per-user aggregate: experience points, the global
// session streak, and bookkeeping dates. Exactly one row per user,
// created lazily on first read.
//
// LastReset records the local date the user's dailies were last rolled
// over; the reset policy compares it to today before serving pool reads.
type UserStats struct {
	UserID    uint       `gorm:"primaryKey" json:"-"`
	XP        int        `gorm:"not null;default:0" json:"xp"`
	Streak    int        `gorm:"not null;default:0" json:"streak"`
	LastLogin *time.Time `json:"last_login"`
	LastReset *time.Time `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}
