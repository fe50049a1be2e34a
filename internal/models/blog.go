package models

import "time"

// Blog represents a single post. Post is the HTML body produced by the
// rich-text editor; it is stored verbatim.
type Blog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null;size:255" json:"title"`
	Post      string    `gorm:"type:text;not null" json:"post"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	UserName  string    `gorm:"size:255" json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogWithMeta is a blog enriched with its like count and comments, as
// returned by the with-meta listing endpoints.
type BlogWithMeta struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Post      string    `json:"post"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Likes     int64     `json:"likes"`
	Comments  []Comment `json:"comments"`
}

// CanEdit reports whether the given user may mutate this blog. This is a
// display hint only; the server is the authority.
func (b *Blog) CanEdit(userID uint) bool {
	return b.UserID != 0 && b.UserID == userID
}
