package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/readlog/readlog/internal/config"
	"github.com/readlog/readlog/internal/database/users"
	"github.com/readlog/readlog/internal/entities"
)

func setupAuthService(t *testing.T) (*Service, func()) {
	dbPath := "./test_auth_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entities.User{}))

	svc := NewService(users.NewRepository(db), config.Auth{BcryptCost: bcrypt.MinCost})

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return svc, cleanup
}

func TestSignup(t *testing.T) {
	svc, cleanup := setupAuthService(t)
	defer cleanup()

	user, err := svc.Signup("reader@example.com", "Avid Reader", "s3cret-pass")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Avid Reader", user.Fullname)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
}

func TestSignup_Validation(t *testing.T) {
	svc, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := svc.Signup("not-an-email", "Avid Reader", "s3cret-pass")
	assert.ErrorIs(t, err, ErrEmailInvalid)

	_, err = svc.Signup("reader@example.com", "A", "s3cret-pass")
	assert.ErrorIs(t, err, ErrFullnameRequired)

	_, err = svc.Signup("reader@example.com", "Avid Reader", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := svc.Signup("reader@example.com", "Avid Reader", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Signup("reader@example.com", "Other Reader", "another-pass")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignin(t *testing.T) {
	svc, cleanup := setupAuthService(t)
	defer cleanup()

	created, err := svc.Signup("reader@example.com", "Avid Reader", "s3cret-pass")
	require.NoError(t, err)

	user, err := svc.Signin("reader@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestSignin_UniformFailureMessage(t *testing.T) {
	svc, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := svc.Signup("reader@example.com", "Avid Reader", "s3cret-pass")
	require.NoError(t, err)

	// Unknown email and wrong password fail identically, so responses
	// never reveal whether an account exists.
	_, unknownErr := svc.Signin("nobody@example.com", "s3cret-pass")
	_, wrongErr := svc.Signin("reader@example.com", "bad-password")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestGetUserByID(t *testing.T) {
	svc, cleanup := setupAuthService(t)
	defer cleanup()

	created, err := svc.Signup("reader@example.com", "Avid Reader", "s3cret-pass")
	require.NoError(t, err)

	user, err := svc.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", user.Email)

	_, err = svc.GetUserByID(9999)
	assert.ErrorIs(t, err, users.ErrNotFound)
}
