// Package userbooks provides database operations for the per-user book
// records and their reading histories.
package userbooks

import (
	"errors"

	"gorm.io/gorm"

	"github.com/readlog/readlog/internal/entities"
)

var ErrNotFound = errors.New("user book not found")

// Repository handles all user-book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new user-book repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetForUser fetches a user-book by id, scoped to the owning user.
// A record belonging to another user is reported as not found rather
// than as a distinct authorization failure.
func (r *Repository) GetForUser(id, userID uint) (*entities.UserBook, error) {
	var ub entities.UserBook
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&ub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ub, nil
}

// FindForBook fetches the user-book for a (user, catalog volume) pair,
// or ErrNotFound when the user has no record for that volume yet.
func (r *Repository) FindForBook(userID uint, bookID string) (*entities.UserBook, error) {
	var ub entities.UserBook
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&ub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ub, nil
}

// ListForUser returns all of a user's book records, most recently
// updated first.
func (r *Repository) ListForUser(userID uint) ([]entities.UserBook, error) {
	var books []entities.UserBook
	err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&books).Error
	return books, err
}

// Create inserts a new user-book record.
func (r *Repository) Create(ub *entities.UserBook) error {
	return r.db.Create(ub).Error
}

// Save persists all fields of an existing user-book record, including
// the reading-history JSON column.
func (r *Repository) Save(ub *entities.UserBook) error {
	return r.db.Save(ub).Error
}
