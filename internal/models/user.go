package models

import "time"

// User represents a board member. ID is chosen at signup and doubles as the
// login name; Username is the display name shown next to posts and comments.
type User struct {
	ID           string `gorm:"primaryKey;size:20"`
	Username     string `gorm:"size:50;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time

	FailedLoginAttempts int        `gorm:"default:0"`
	LockedUntil         *time.Time `gorm:"index"`
}
