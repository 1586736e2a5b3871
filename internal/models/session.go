package models

import "time"

// Session stores a login session when the DB-backed session store is used.
// Token is an opaque UUID handed to the browser as an HTTP-only cookie.
type Session struct {
	Token     string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:20;index;not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index;not null"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
