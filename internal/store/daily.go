package store

import (
	"fmt"

	"github.com/pravinpanwar/impulse/internal/models"
	"gorm.io/gorm"
)

// Dailies returns the user's dailies, newest first.
func (s *Store) Dailies(userID uint) ([]models.Daily, error) {
	var dailies []models.Daily
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&dailies).Error; err != nil {
		return nil, fmt.Errorf("store: list dailies: %w", err)
	}
	return dailies, nil
}

// PendingDailies returns the user's dailies not yet completed today.
func (s *Store) PendingDailies(userID uint) ([]models.Daily, error) {
	var dailies []models.Daily
	err := s.db.Where("user_id = ? AND completed_today = ?", userID, false).
		Order("created_at DESC").
		Find(&dailies).Error
	if err != nil {
		return nil, fmt.Errorf("store: list pending dailies: %w", err)
	}
	return dailies, nil
}

// CreateDaily inserts a new daily. A goal reference, if given, must point
// at a goal the same user owns.
func (s *Store) CreateDaily(userID uint, text string, at *string, goalID *uint) (*models.Daily, error) {
	if text == "" {
		return nil, fmt.Errorf("store: daily text is required")
	}
	if goalID != nil {
		var count int64
		if err := s.db.Model(&models.Goal{}).Where("id = ? AND user_id = ?", *goalID, userID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("store: check goal %d: %w", *goalID, err)
		}
		if count == 0 {
			return nil, notFound("goal", *goalID)
		}
	}
	daily := models.Daily{UserID: userID, Text: text, Time: at, GoalID: goalID}
	if err := s.db.Create(&daily).Error; err != nil {
		return nil, fmt.Errorf("store: create daily: %w", err)
	}
	return &daily, nil
}

// UpdateDaily rewrites a daily's text and schedule, enforcing ownership.
// Streak, completion flag, and history are untouchable through this path.
func (s *Store) UpdateDaily(dailyID, userID uint, text string, at *string) error {
	if text == "" {
		return fmt.Errorf("store: daily text is required")
	}
	res := s.db.Model(&models.Daily{}).
		Where("id = ? AND user_id = ?", dailyID, userID).
		Updates(map[string]interface{}{"text": text, "time": at})
	if res.Error != nil {
		return fmt.Errorf("store: update daily %d: %w", dailyID, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("daily", dailyID)
	}
	return nil
}

// DeleteDaily removes a daily and its completion history, enforcing
// ownership.
func (s *Store) DeleteDaily(dailyID, userID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", dailyID, userID).Delete(&models.Daily{})
		if res.Error != nil {
			return fmt.Errorf("store: delete daily %d: %w", dailyID, res.Error)
		}
		if res.RowsAffected == 0 {
			return notFound("daily", dailyID)
		}
		if err := tx.Where("daily_id = ?", dailyID).Delete(&models.DailyHistory{}).Error; err != nil {
			return fmt.Errorf("store: delete history for daily %d: %w", dailyID, err)
		}
		return nil
	})
	return err
}

// CompleteDaily marks a daily done for today, bumps its streak, and
// appends one history event, all in a single transaction. A daily that is
// missing, owned by someone else, or already completed today reports
// not-found and leaves no partial effect. Returns the full history,
// newest first, including the new event.
func (s *Store) CompleteDaily(dailyID, userID uint) ([]models.DailyHistory, error) {
	var history []models.DailyHistory

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Daily{}).
			Where("id = ? AND user_id = ? AND completed_today = ?", dailyID, userID, false).
			Updates(map[string]interface{}{
				"completed_today": true,
				"streak":          gorm.Expr("streak + 1"),
			})
		if res.Error != nil {
			return fmt.Errorf("store: complete daily %d: %w", dailyID, res.Error)
		}
		if res.RowsAffected == 0 {
			return notFound("daily", dailyID)
		}

		event := models.DailyHistory{DailyID: dailyID, CompletedAt: s.now()}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("store: append history for daily %d: %w", dailyID, err)
		}

		// Read back inside the transaction so the caller sees exactly the
		// state this completion committed.
		err := tx.Where("daily_id = ?", dailyID).
			Order("completed_at DESC").
			Find(&history).Error
		if err != nil {
			return fmt.Errorf("store: read history for daily %d: %w", dailyID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

// DailyHistory returns a daily's completion events, newest first,
// enforcing ownership via the parent daily.
func (s *Store) DailyHistory(dailyID, userID uint) ([]models.DailyHistory, error) {
	var count int64
	if err := s.db.Model(&models.Daily{}).Where("id = ? AND user_id = ?", dailyID, userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("store: check daily %d: %w", dailyID, err)
	}
	if count == 0 {
		return nil, notFound("daily", dailyID)
	}

	var history []models.DailyHistory
	err := s.db.Where("daily_id = ?", dailyID).
		Order("completed_at DESC").
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("store: read history for daily %d: %w", dailyID, err)
	}
	return history, nil
}

// ResetDailies clears every completed-today flag for the user. Streaks
// and history are untouched; this is the day-rollover sweep.
func (s *Store) ResetDailies(userID uint) error {
	err := s.db.Model(&models.Daily{}).
		Where("user_id = ?", userID).
		Update("completed_today", false).Error
	if err != nil {
		return fmt.Errorf("store: reset dailies: %w", err)
	}
	return nil
}
