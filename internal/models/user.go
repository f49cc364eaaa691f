// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account on the marketplace.
//
// Password holds the bcrypt hash of the plaintext password; the plaintext is
// never stored. AccessToken is the opaque bearer credential generated once at
// registration and never rotated. Both are excluded from JSON payloads; the
// token is surfaced only through the dedicated signup/login responses.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	AccessToken string    `gorm:"uniqueIndex;size:64;not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	Ads         []Ad      `gorm:"foreignKey:UserID" json:"ads,omitempty"`
}
