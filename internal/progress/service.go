// Package progress implements the reading-progress ledger: the ordered,
// append-only history of reading sessions kept per user/book pair.
package progress

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/readlog/readlog/internal/database/userbooks"
	"github.com/readlog/readlog/internal/entities"
)

// UserBookStore is the slice of the user-book repository the ledger needs.
type UserBookStore interface {
	GetForUser(id, userID uint) (*entities.UserBook, error)
	Create(ub *entities.UserBook) error
	Save(ub *entities.UserBook) error
}

// Service records reading sessions and read-status changes against
// user-book records.
type Service struct {
	books UserBookStore

	// Injected for tests; default to time.Now and uuid.NewString.
	now   func() time.Time
	newID func() string
}

// NewService creates a new ledger service.
func NewService(books UserBookStore) *Service {
	return &Service{
		books: books,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// RecordSessionInput holds the fields of a progress-save request.
// UserBookID is zero when the user has no record for the book yet.
type RecordSessionInput struct {
	UserID         uint
	BookID         string
	BookName       string
	ImageURL       string
	UserBookID     uint
	PageNumber     int
	ElapsedSeconds int
}

// RecordSession appends one reading session to a user-book's history,
// creating the record on first save. The new session's PageStart is the
// previous newest session's PageEnd (0 when the history is empty), and
// the page number may never regress below it.
//
// The history read-modify-write carries no concurrency token; concurrent
// saves for the same record are last-write-wins.
func (s *Service) RecordSession(in RecordSessionInput) (*entities.UserBook, error) {
	if in.UserID == 0 {
		return nil, ErrAuthRequired
	}
	if err := validateRecordSession(in); err != nil {
		return nil, err
	}

	now := s.now()
	session := entities.ReadingSession{
		ID:        s.newID(),
		PageEnd:   in.PageNumber,
		StartTime: now.Add(-time.Duration(in.ElapsedSeconds) * time.Second),
		EndTime:   now,
	}

	if in.UserBookID == 0 {
		ub := &entities.UserBook{
			UserID:         in.UserID,
			BookID:         in.BookID,
			ReadStatus:     entities.ReadStatusReading,
			Name:           in.BookName,
			ImageURL:       in.ImageURL,
			ReadingHistory: datatypes.JSONSlice[entities.ReadingSession]{session},
		}
		if err := s.books.Create(ub); err != nil {
			return nil, &PersistenceError{Err: err}
		}
		return ub, nil
	}

	ub, err := s.books.GetForUser(in.UserBookID, in.UserID)
	if err != nil {
		if errors.Is(err, userbooks.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Err: err}
	}

	history := ub.ReadingHistory
	if len(history) > 0 {
		if in.PageNumber < history[0].PageEnd {
			return nil, ErrInvalidProgress
		}
		session.PageStart = history[0].PageEnd
	}

	updated := append([]entities.ReadingSession{session}, history...)
	ub.ReadingHistory = datatypes.JSONSlice[entities.ReadingSession](updated)
	if err := s.books.Save(ub); err != nil {
		return nil, &PersistenceError{Err: err}
	}
	return ub, nil
}

// SetStatusInput holds the fields of a read-status change request.
type SetStatusInput struct {
	UserID     uint
	BookID     string
	BookName   string
	ImageURL   string
	UserBookID uint
	Status     entities.ReadStatus
}

// SetStatus overwrites a user-book's read status unconditionally,
// creating the record with an empty history when none exists yet.
// Status never transitions automatically; reaching the last page does
// not mark a book as read.
func (s *Service) SetStatus(in SetStatusInput) (*entities.UserBook, error) {
	if in.UserID == 0 {
		return nil, ErrAuthRequired
	}
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	if in.UserBookID == 0 {
		ub := &entities.UserBook{
			UserID:         in.UserID,
			BookID:         in.BookID,
			ReadStatus:     in.Status,
			Name:           in.BookName,
			ImageURL:       in.ImageURL,
			ReadingHistory: datatypes.JSONSlice[entities.ReadingSession]{},
		}
		if err := s.books.Create(ub); err != nil {
			return nil, &PersistenceError{Err: err}
		}
		return ub, nil
	}

	ub, err := s.books.GetForUser(in.UserBookID, in.UserID)
	if err != nil {
		if errors.Is(err, userbooks.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Err: err}
	}

	ub.ReadStatus = in.Status
	if err := s.books.Save(ub); err != nil {
		return nil, &PersistenceError{Err: err}
	}
	return ub, nil
}

func validateRecordSession(in RecordSessionInput) error {
	fields := make(map[string]string)
	if in.PageNumber < 0 {
		fields["pageNumber"] = "must be a non-negative integer"
	}
	if in.ElapsedSeconds < 0 {
		fields["elapsedSeconds"] = "must be a non-negative integer"
	}
	if in.UserBookID == 0 && in.BookID == "" {
		fields["bookId"] = "is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// CompletionPercentage derives how far through a book the reader is.
// The denominator is floored at 1 so an unknown or zero page count
// never divides by zero.
func CompletionPercentage(currentPage, pageCount int) int {
	if pageCount < 1 {
		pageCount = 1
	}
	return currentPage * 100 / pageCount
}
