package models

import "time"

// Post is a board article.
type Post struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"size:200;not null"`
	Content   string    `gorm:"type:text;not null"`
	ViewCount int64     `gorm:"not null;default:0"`
	AuthorID  string    `gorm:"size:20;index;not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
