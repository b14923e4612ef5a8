package models

import "time"

// Daily is a recurring obligation. CompletedToday flips true at most once
// per calendar day via the completion transaction and is cleared again at
// the day rollover. Streak counts lifetime completions and only ever grows.
type Daily struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Text           string    `gorm:"not null" json:"text"`
	Time           *string   `gorm:"size:8" json:"time"`
	Streak         int       `gorm:"not null;default:0" json:"streak"`
	CompletedToday bool      `gorm:"not null;default:false" json:"completed_today"`
	GoalID         *uint     `gorm:"index" json:"goal_id"`
	CreatedAt      time.Time `json:"created_at"`

	Goal    *Goal          `gorm:"foreignKey:GoalID" json:"-"`
	History []DailyHistory `gorm:"foreignKey:DailyID;constraint:OnDelete:CASCADE" json:"-"`
}

// DailyHistory is one immutable completion record for a daily. Rows are
// append-only; they are removed only by the cascade when the daily goes.
type DailyHistory struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DailyID     uint      `gorm:"not null;index" json:"daily_id"`
	CompletedAt time.Time `gorm:"not null;index" json:"completed_at"`
}
