package models

import (
	"time"
)

// Post represents a blog post
type Post struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// MaxTitleLength caps post titles
const MaxTitleLength = 200

// MaxContentLength caps post bodies
const MaxContentLength = 50000
