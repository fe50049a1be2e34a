// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. The password hash and reset-code
// fields are server-side only and never serialized to clients.
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Username        string    `gorm:"uniqueIndex;not null;size:255" json:"username"`
	Email           string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password        string    `gorm:"not null;size:255" json:"-"`
	ResetCode       string    `gorm:"size:6" json:"-"`
	ResetCodeExpiry time.Time `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Profile is the denormalized snapshot of the authenticated principal that
// the client persists alongside its token.
type Profile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Profile returns the client-visible snapshot of the user.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Username: u.Username, Email: u.Email}
}
