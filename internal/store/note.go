package store

import (
	"fmt"

	"github.com/pravinpanwar/impulse/internal/models"
)

// Notes returns the user's notes, newest first.
func (s *Store) Notes(userID uint) ([]models.Note, error) {
	var notes []models.Note
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("store: list notes: %w", err)
	}
	return notes, nil
}

// CreateNote inserts a new note for the user.
func (s *Store) CreateNote(userID uint, text, category string) (*models.Note, error) {
	if text == "" {
		return nil, fmt.Errorf("store: note text is required")
	}
	if category == "" {
		category = "GENERAL"
	}
	note := models.Note{UserID: userID, Text: text, Category: category}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, fmt.Errorf("store: create note: %w", err)
	}
	return &note, nil
}

// DeleteNote removes a note, enforcing ownership.
func (s *Store) DeleteNote(noteID, userID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", noteID, userID).Delete(&models.Note{})
	if res.Error != nil {
		return fmt.Errorf("store: delete note %d: %w", noteID, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("note", noteID)
	}
	return nil
}
