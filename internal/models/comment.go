package models

import "time"

// Comment is attached to a blog. Comments are append-only: there is no
// update or delete operation in this system.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	UserName  string    `gorm:"size:255" json:"user_name"`
	BlogID    uint      `gorm:"not null;index" json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
