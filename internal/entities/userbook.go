package entities

import (
	"time"

	"gorm.io/datatypes"
)

type ReadStatus string

const (
	ReadStatusReading    ReadStatus = "reading"
	ReadStatusWantToRead ReadStatus = "want-to-read"
	ReadStatusRead       ReadStatus = "read"
)

// Valid reports whether s is one of the known read statuses.
func (s ReadStatus) Valid() bool {
	switch s {
	case ReadStatusReading, ReadStatusWantToRead, ReadStatusRead:
		return true
	}
	return false
}

// ReadingSession is a single logged stretch of reading. Sessions are
// immutable once created; the ID is generated locally, not by the store.
type ReadingSession struct {
	ID        string    `json:"id"`
	PageStart int       `json:"page_start"`
	PageEnd   int       `json:"page_end"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// UserBook links a user to a catalog volume. One record exists per
// user/book pair, created on the first progress save or status change.
//
// ReadingHistory is stored newest-first and is append-only: new sessions
// are prepended, entries are never edited or removed.
type UserBook struct {
	ID             uint                                `gorm:"primaryKey" json:"id"`
	UserID         uint                                `gorm:"index" json:"user_id"`
	BookID         string                              `gorm:"index;size:64" json:"book_id"`
	ReadStatus     ReadStatus                          `gorm:"size:20;default:'reading'" json:"read_status"`
	Name           string                              `gorm:"size:512" json:"name"`
	ImageURL       string                              `gorm:"size:2048" json:"image_url,omitempty"`
	ReadingHistory datatypes.JSONSlice[ReadingSession] `json:"reading_history"`
	User           User                                `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt      time.Time                           `json:"created_at"`
	UpdatedAt      time.Time                           `json:"updated_at"`
}

// CurrentPage returns the page the reader is on: the page the newest
// session ended at, or 0 when nothing has been logged yet.
func (ub *UserBook) CurrentPage() int {
	if len(ub.ReadingHistory) == 0 {
		return 0
	}
	return ub.ReadingHistory[0].PageEnd
}
