package store

import (
	"fmt"
	"strings"

	"github.com/pravinpanwar/impulse/internal/models"
	"gorm.io/gorm"
)

// CreateUser inserts a new account with an already-hashed password.
func (s *Store) CreateUser(username, email, passwordHash string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, fmt.Errorf("store: username is required")
	}
	if email == "" {
		return nil, fmt.Errorf("store: email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("store: password hash is required")
	}
	user := models.User{Username: username, Email: email, PasswordHash: passwordHash}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("store: create user %q: %w", username, err)
	}
	return &user, nil
}

// UserByUsername looks up an account for credential verification.
func (s *Store) UserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store: user %q: %w", username, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("store: read user %q: %w", username, err)
	}
	return &user, nil
}

// UserByEmail looks up an account by email.
func (s *Store) UserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store: user %q: %w", email, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("store: read user %q: %w", email, err)
	}
	return &user, nil
}

// UserByID resolves a token subject back to an account.
func (s *Store) UserByID(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("user", userID)
		}
		return nil, fmt.Errorf("store: read user %d: %w", userID, err)
	}
	return &user, nil
}
