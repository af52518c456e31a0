package auth

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/readlog/readlog/internal/config"
	"github.com/readlog/readlog/internal/database/users"
	"github.com/readlog/readlog/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	// ErrInvalidCredentials is returned for an unknown email and for a
	// wrong password alike, so responses never reveal which one it was.
	ErrInvalidCredentials = errors.New("Email/Password combination is incorrect")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrEmailInvalid       = errors.New("invalid email format")
	ErrFullnameRequired   = errors.New("fullname must contain at least 2 characters")
)

// Service handles sign-in and account creation.
type Service struct {
	users  *users.Repository
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(repo *users.Repository, cfg config.Auth) *Service {
	return &Service{users: repo, config: cfg}
}

// Signin validates credentials and returns the matching user.
func (s *Service) Signin(email, password string) (*entities.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

// Signup creates a new account with a hashed password.
func (s *Service) Signup(email, fullname, password string) (*entities.User, error) {
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}
	if len(fullname) < 2 {
		return nil, ErrFullnameRequired
	}

	taken, err := s.users.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Fullname:     fullname,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	return s.users.GetByID(id)
}
