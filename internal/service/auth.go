package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"simple-board/internal/models"
	"simple-board/internal/session"
	"simple-board/internal/util"

	"gorm.io/gorm"
)

const (
	maxLoginFailures = 5
	lockoutDuration  = 10 * time.Minute
)

// AuthService handles signup, login and logout.
type AuthService struct {
	DB         *gorm.DB
	Sessions   session.Store
	BcryptCost int
}

func NewAuthService(db *gorm.DB, sessions session.Store, bcryptCost int) *AuthService {
	return &AuthService{DB: db, Sessions: sessions, BcryptCost: bcryptCost}
}

// Signup creates a new user. A taken id yields ErrConflict.
func (s *AuthService) Signup(id, username, password string) (*models.User, error) {
	id = strings.TrimSpace(id)
	username = strings.TrimSpace(username)

	if err := util.ValidateUserID(id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if err := util.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	}

	hash, err := util.HashPassword(password, s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Login verifies credentials and issues a session token. Wrong id and wrong
// password are indistinguishable to the caller. Five consecutive failures
// lock the account for ten minutes.
func (s *AuthService) Login(id, password string) (string, *models.User, error) {
	id = strings.TrimSpace(id)

	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	now := time.Now()
	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		return "", nil, fmt.Errorf("%w: account locked, try again later", ErrUnauthenticated)
	}

	if !util.CheckPassword(password, user.PasswordHash) {
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= maxLoginFailures {
			lockUntil := now.Add(lockoutDuration)
			user.LockedUntil = &lockUntil
			user.FailedLoginAttempts = 0
		}
		if saveErr := s.DB.Save(&user).Error; saveErr != nil {
			log.Printf("record login failure for %s: %v", user.ID, saveErr)
		}
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}

	if user.FailedLoginAttempts != 0 || user.LockedUntil != nil {
		user.FailedLoginAttempts = 0
		user.LockedUntil = nil
		if saveErr := s.DB.Save(&user).Error; saveErr != nil {
			log.Printf("reset login failures for %s: %v", user.ID, saveErr)
		}
	}

	token, err := s.Sessions.Create(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}
	return token, &user, nil
}

// Logout destroys the session; an unknown token is not an error.
func (s *AuthService) Logout(token string) error {
	return s.Sessions.Destroy(token)
}
