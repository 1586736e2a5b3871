package models

import "time"

// Comment belongs to exactly one post.
type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	Content   string `gorm:"size:1000;not null"`
	AuthorID  string `gorm:"size:20;index;not null"`
	PostID    uint   `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Post   Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
