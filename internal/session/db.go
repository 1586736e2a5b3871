package session

import (
	"errors"
	"fmt"
	"time"

	"simple-board/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DBStore keeps one sessions-table row per session.
type DBStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewDBStore(db *gorm.DB, ttl time.Duration) *DBStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DBStore{db: db, ttl: ttl}
}

func (s *DBStore) Create(userID string) (string, error) {
	token := uuid.NewString()
	now := time.Now()
	sess := models.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.db.Create(&sess).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

func (s *DBStore) Resolve(token string) (string, error) {
	if token == "" {
		return "", ErrInvalid
	}
	var sess models.Session
	if err := s.db.First(&sess, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalid
		}
		return "", fmt.Errorf("lookup session: %w", err)
	}
	if !sess.ExpiresAt.After(time.Now()) {
		// lazy cleanup
		_ = s.db.Delete(&models.Session{}, "token = ?", token).Error
		return "", ErrInvalid
	}
	return sess.UserID, nil
}

func (s *DBStore) Destroy(token string) error {
	if token == "" {
		return nil
	}
	if err := s.db.Delete(&models.Session{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *DBStore) Extend(token string) error {
	if token == "" {
		return nil
	}
	// expired rows are left for Resolve's lazy cleanup, not revived
	err := s.db.Model(&models.Session{}).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		Update("expires_at", time.Now().Add(s.ttl)).Error
	if err != nil {
		return fmt.Errorf("extend session: %w", err)
	}
	return nil
}
