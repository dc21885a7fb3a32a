package models

import "time"

// Post is a timestamped piece of authored text. Posts are immutable once
// published; there are no edit semantics.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Body      string    `gorm:"not null" json:"body"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Language  string    `gorm:"type:varchar(8)" json:"language,omitempty"`
	SearchRef string    `json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
