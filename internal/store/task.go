package store

import (
	"fmt"

	"github.com/pravinpanwar/impulse/internal/models"
)

// Tasks returns the user's open chaos tasks, newest first.
func (s *Store) Tasks(userID uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("store: list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask inserts a new chaos task for the user.
func (s *Store) CreateTask(userID uint, text string, at *string) (*models.Task, error) {
	if text == "" {
		return nil, fmt.Errorf("store: task text is required")
	}
	task := models.Task{UserID: userID, Text: text, Time: at}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("store: create task: %w", err)
	}
	return &task, nil
}

// UpdateTask rewrites a task's text and schedule, enforcing ownership.
func (s *Store) UpdateTask(taskID, userID uint, text string, at *string) error {
	if text == "" {
		return fmt.Errorf("store: task text is required")
	}
	res := s.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(map[string]interface{}{"text": text, "time": at})
	if res.Error != nil {
		return fmt.Errorf("store: update task %d: %w", taskID, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("task", taskID)
	}
	return nil
}

// DeleteTask removes a task, enforcing ownership.
func (s *Store) DeleteTask(taskID, userID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", taskID, userID).Delete(&models.Task{})
	if res.Error != nil {
		return fmt.Errorf("store: delete task %d: %w", taskID, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("task", taskID)
	}
	return nil
}
