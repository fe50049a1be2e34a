package models

import "time"

// Like records that a user liked a blog. At most one row per (user, blog)
// pair; the server rejects duplicates.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	BlogID    uint      `gorm:"not null;index" json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LikedBy reports whether the given user appears in the like list.
func LikedBy(likes []Like, userID uint) bool {
	for _, l := range likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}
