package store

import (
	"fmt"

	"github.com/pravinpanwar/impulse/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Stats returns the user's aggregate row, creating a zeroed one on first
// read. Concurrent first reads are safe: the insert is an upsert keyed on
// user_id.
func (s *Store) Stats(userID uint) (*models.UserStats, error) {
	var stats models.UserStats
	err := s.db.Where("user_id = ?", userID).First(&stats).Error
	if err == nil {
		return &stats, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("store: read stats: %w", err)
	}

	stats = models.UserStats{UserID: userID}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&stats)
	if res.Error != nil {
		return nil, fmt.Errorf("store: init stats: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost the race; the row exists now.
		if err := s.db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
			return nil, fmt.Errorf("store: reread stats: %w", err)
		}
	}
	return &stats, nil
}

// SaveStats persists the scoring engine's output and stamps last_login.
// Negative values are rejected before touching the row.
func (s *Store) SaveStats(userID uint, xp, streak int) error {
	if xp < 0 || streak < 0 {
		return fmt.Errorf("store: xp and streak must be non-negative")
	}
	now := s.now()
	stats := models.UserStats{UserID: userID, XP: xp, Streak: streak, LastLogin: &now}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"xp", "streak", "last_login"}),
	}).Create(&stats)
	if res.Error != nil {
		return fmt.Errorf("store: save stats: %w", res.Error)
	}
	return nil
}

// MarkReset stamps the date the user's dailies were last rolled over.
func (s *Store) MarkReset(userID uint) error {
	now := s.now()
	stats := models.UserStats{UserID: userID, LastReset: &now}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_reset"}),
	}).Create(&stats)
	if res.Error != nil {
		return fmt.Errorf("store: mark reset: %w", res.Error)
	}
	return nil
}

// AllUserIDs lists every user, for the rollover sweep.
func (s *Store) AllUserIDs() ([]uint, error) {
	var ids []uint
	if err := s.db.Model(&models.User{}).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("store: list users: %w", err)
	}
	return ids, nil
}
