package store

import (
	"fmt"

	"github.com/pravinpanwar/impulse/internal/models"
	"gorm.io/gorm"
)

// Goals returns the user's goals, newest first.
func (s *Store) Goals(userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("store: list goals: %w", err)
	}
	return goals, nil
}

// CreateGoal inserts a new goal for the user.
func (s *Store) CreateGoal(userID uint, name, color string) (*models.Goal, error) {
	if name == "" {
		return nil, fmt.Errorf("store: goal name is required")
	}
	goal := models.Goal{UserID: userID, Name: name, Color: color}
	if err := s.db.Create(&goal).Error; err != nil {
		return nil, fmt.Errorf("store: create goal: %w", err)
	}
	return &goal, nil
}

// DeleteGoal removes a goal and detaches every daily that referenced it,
// in one transaction. Dailies survive with a null goal reference; a goal
// that is missing or not owned rolls the detach back and reports
// not-found.
func (s *Store) DeleteGoal(goalID, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Daily{}).
			Where("goal_id = ? AND user_id = ?", goalID, userID).
			Update("goal_id", nil).Error
		if err != nil {
			return fmt.Errorf("store: detach dailies from goal %d: %w", goalID, err)
		}

		res := tx.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.Goal{})
		if res.Error != nil {
			return fmt.Errorf("store: delete goal %d: %w", goalID, res.Error)
		}
		if res.RowsAffected == 0 {
			return notFound("goal", goalID)
		}
		return nil
	})
}
