// Package models contains data structures for the application's domain models.
package models

import (
	"crypto/md5" //nolint:gosec // avatar key derivation, not a security property
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// User represents a registered account in the Microlog application.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	AboutMe      string    `json:"about_me"`
	LastSeen     time.Time `json:"last_seen"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// NormalizeEmail lowercases and trims an email address. Emails are stored
// normalized so the unique index also enforces case-insensitive uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername lowercases and trims a username for comparison.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// AvatarKey returns the stable avatar key for the user's email: the lowercase
// hex MD5 of the normalized address. Display convenience only.
func (u *User) AvatarKey() string {
	sum := md5.Sum([]byte(NormalizeEmail(u.Email))) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// AvatarURL builds a Gravatar URL for the user at the requested pixel size.
func (u *User) AvatarURL(size int) string {
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon&s=%d", u.AvatarKey(), size)
}
