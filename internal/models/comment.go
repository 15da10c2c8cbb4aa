package models

import (
	"time"
)

// Comment represents a comment on a post. A nil ParentID marks a
// top-level comment; replies reference a top-level comment's id.
// Nesting is one level deep, enforced at write time.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"post_id" db:"post_id"`
	ParentID  *int64    `json:"parent_id,omitempty" db:"parent_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Email     string    `json:"email,omitempty" db:"email"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TopLevel reports whether the comment is attached directly to a post
func (c *Comment) TopLevel() bool {
	return c.ParentID == nil
}

// CommentThread is a top-level comment paired with its direct replies,
// both in creation order.
type CommentThread struct {
	Comment
	Replies []*Comment `json:"replies"`
}

// MaxCommentLength caps comment bodies
const MaxCommentLength = 2000
