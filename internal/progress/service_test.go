package progress

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/readlog/readlog/internal/database/userbooks"
	"github.com/readlog/readlog/internal/entities"
)

func setupTestService(t *testing.T) (*gorm.DB, *Service, func()) {
	dbPath := "./test_progress_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{}, &entities.UserBook{})
	require.NoError(t, err)

	svc := NewService(userbooks.NewRepository(db))

	idSeq := 0
	svc.newID = func() string {
		idSeq++
		return fmt.Sprintf("session-%d", idSeq)
	}
	svc.now = func() time.Time {
		return time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	}

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, svc, cleanup
}

func TestRecordSession_RequiresAuth(t *testing.T) {
	_, svc, cleanup := setupTestService(t)
	defer cleanup()

	_, err := svc.RecordSession(RecordSessionInput{
		UserID:     0,
		BookID:     "vol-1",
		PageNumber: 10,
	})
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestRecordSession_ValidatesInput(t *testing.T) {
	_, svc, cleanup := setupTestService(t)
	defer cleanup()

	_, err := svc.RecordSession(RecordSessionInput{
		UserID:         1,
		BookID:         "vol-1",
		PageNumber:     -5,
		ElapsedSeconds: -1,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "pageNumber")
	assert.Contains(t, verr.Fields, "elapsedSeconds")
}

func TestRecordSession_FirstSaveCreatesRecord(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	ub, err := svc.RecordSession(RecordSessionInput{
		UserID:         1,
		BookID:         "vol-1",
		BookName:       "The Left Hand of Darkness",
		ImageURL:       "https://example.com/cover.jpg",
		PageNumber:     10,
		ElapsedSeconds: 120,
	})
	require.NoError(t, err)

	assert.Equal(t, entities.ReadStatusReading, ub.ReadStatus)
	require.Len(t, ub.ReadingHistory, 1)
	assert.Equal(t, 0, ub.ReadingHistory[0].PageStart)
	assert.Equal(t, 10, ub.ReadingHistory[0].PageEnd)
	assert.Equal(t, 120*time.Second, ub.ReadingHistory[0].EndTime.Sub(ub.ReadingHistory[0].StartTime))

	// Exactly one record exists and it round-trips through the store.
	var count int64
	db.Model(&entities.UserBook{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var stored entities.UserBook
	require.NoError(t, db.First(&stored, ub.ID).Error)
	require.Len(t, stored.ReadingHistory, 1)
	assert.Equal(t, "session-1", stored.ReadingHistory[0].ID)
}

func TestRecordSession_PrependsAndChainsPages(t *testing.T) {
	_, svc, cleanup := setupTestService(t)
	defer cleanup()

	first, err := svc.RecordSession(RecordSessionInput{
		UserID: 1, BookID: "vol-1", PageNumber: 10, ElapsedSeconds: 120,
	})
	require.NoError(t, err)

	second, err := svc.RecordSession(RecordSessionInput{
		UserID: 1, UserBookID: first.ID, PageNumber: 25, ElapsedSeconds: 60,
	})
	require.NoError(t, err)

	require.Len(t, second.ReadingHistory, 2)
	assert.Equal(t, 10, second.ReadingHistory[0].PageStart)
	assert.Equal(t, 25, second.ReadingHistory[0].PageEnd)
	assert.Equal(t, 10, second.ReadingHistory[1].PageEnd)
}

func TestRecordSession_HistoryStaysMonotonic(t *testing.T) {
	_, svc, cleanup := setupTestService(t)
	defer cleanup()

	first, err := svc.RecordSession(RecordSessionInput{
		UserID: 1, BookID: "vol-1", PageNumber: 5,
	})
	require.NoError(t, err)

	var latest *entities.UserBook
	for _, page := range []int{5, 12, 12, 40, 100} {
		latest, err = svc.RecordSession(RecordSessionInput{
			UserID: 1, UserBookID: first.ID, PageNumber: page,
		})
		require.NoError(t, err)
	}

	require.Len(t, latest.ReadingHistory, 6)
	for i := 0; i < len(latest.ReadingHistory)-1; i++ {
		newer := latest.ReadingHistory[i]
		older := latest.ReadingHistory[i+1]
		assert.GreaterOrEqual(t, newer.PageEnd, older.PageEnd)
		assert.Equal(t, older.PageEnd, newer.PageStart)
	}
}

func TestRecordSession_RejectsRegression(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	first, err := svc.RecordSession(RecordSessionInput{
		UserID: 1, BookID: "vol-1", PageNumber: 50,
	})
	require.NoError(t, err)

	_, err = svc.RecordSession(RecordSessionInput{
		UserID: 1, UserBookID: first.ID, PageNumber: 49,
	})
	assert.ErrorIs(t, err, ErrInvalidProgress)

	// The stored history is untouched.
	var stored entities.UserBook
	require.NoError(t, db.First(&stored, first.ID).Error)
	require.Len(t, stored.ReadingHistory, 1)
	assert.Equal(t, 50, stored.ReadingHistory[0].PageEnd)
}

func TestRecordSession_UnknownRecord(t *testing.T) {
	_, svc, cleanup := setupTestService(t)
	defer cleanup()

	_, err := svc.RecordSession(RecordSessionInput{
		UserID: 1, UserBookID: 999, PageNumber: 10,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordSession_ScopedToOwner(t *testing.T) {
	_, svc, cleanup := setupTestService(t)
	defer cleanup()

	theirs, err := svc.RecordSession(RecordSessionInput{
		UserID: 1, BookID: "vol-1", PageNumber: 10,
	})
	require.NoError(t, err)

	// Another user referencing the same record id gets not-found, not
	// an authorization error.
	_, err = svc.RecordSession(RecordSessionInput{
		UserID: 2, UserBookID: theirs.ID, PageNumber: 20,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetStatus(t *testing.T) {
	_, svc, cleanup := setupTestService(t)
	defer cleanup()

	ub, err := svc.SetStatus(SetStatusInput{
		UserID: 1, BookID: "vol-1", BookName: "Dune", Status: entities.ReadStatusWantToRead,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.ReadStatusWantToRead, ub.ReadStatus)
	assert.Empty(t, ub.ReadingHistory)

	updated, err := svc.SetStatus(SetStatusInput{
		UserID: 1, UserBookID: ub.ID, Status: entities.ReadStatusRead,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.ReadStatusRead, updated.ReadStatus)
}

func TestSetStatus_Invalid(t *testing.T) {
	_, svc, cleanup := setupTestService(t)
	defer cleanup()

	_, err := svc.SetStatus(SetStatusInput{
		UserID: 1, BookID: "vol-1", Status: entities.ReadStatus("paused"),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.SetStatus(SetStatusInput{
		UserID: 0, BookID: "vol-1", Status: entities.ReadStatusRead,
	})
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 25, CompletionPercentage(50, 200))
	assert.Equal(t, 100, CompletionPercentage(200, 200))
	assert.Equal(t, 0, CompletionPercentage(0, 200))

	// A zero or unknown page count floors the denominator at 1 rather
	// than dividing by zero.
	assert.Equal(t, 5000, CompletionPercentage(50, 0))
	assert.Equal(t, 5000, CompletionPercentage(50, -3))
}

func TestCurrentPage(t *testing.T) {
	ub := &entities.UserBook{}
	assert.Equal(t, 0, ub.CurrentPage())

	ub.ReadingHistory = append(ub.ReadingHistory, entities.ReadingSession{PageStart: 10, PageEnd: 42})
	assert.Equal(t, 42, ub.CurrentPage())
}
