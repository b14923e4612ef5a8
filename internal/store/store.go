// Package store is the authorization-checked data access layer. Every
// operation is scoped to a single owning user; an entity that exists but
// belongs to someone else is indistinguishable from one that does not
// exist, so owner mismatches surface as gorm.ErrRecordNotFound.
package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Store wraps the database handle with a clock so date-sensitive
// operations can be pinned in tests.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Opts holds parameters for creating a Store.
type Opts struct {
	DB  *gorm.DB
	Now func() time.Time // defaults to time.Now
}

// New creates a Store.
func New(opts Opts) (*Store, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("store: db is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{db: opts.DB, now: now}, nil
}

// DB exposes the underlying handle for migration and test setup.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// notFound wraps gorm.ErrRecordNotFound with entity context.
func notFound(entity string, id uint) error {
	return fmt.Errorf("store: %s %d: %w", entity, id, gorm.ErrRecordNotFound)
}
