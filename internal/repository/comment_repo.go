package repository

import (
	"context"
	"database/sql"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment and fills in its generated id
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, parent_id, user_id, email, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		comment.PostID, comment.ParentID, comment.UserID, comment.Email,
		comment.Content, comment.CreatedAt,
	).Scan(&comment.ID)
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `
		SELECT id, post_id, parent_id, user_id, email, content, created_at
		FROM comments WHERE id = $1
	`

	var comment models.Comment
	var parentID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.PostID, &parentID, &comment.UserID,
		&comment.Email, &comment.Content, &comment.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		comment.ParentID = &parentID.Int64
	}
	return &comment, nil
}

// ListByPost retrieves all comments for a post in creation order
func (r *commentRepo) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	query := `
		SELECT id, post_id, parent_id, user_id, email, content, created_at
		FROM comments WHERE post_id = $1 ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		var parentID sql.NullInt64
		err := rows.Scan(
			&comment.ID, &comment.PostID, &parentID, &comment.UserID,
			&comment.Email, &comment.Content, &comment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if parentID.Valid {
			comment.ParentID = &parentID.Int64
		}
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

// DeleteWithReplies removes a comment's direct replies and then the
// comment itself in one transaction, so no row is ever left
// referencing the deleted id as parent.
func (r *commentRepo) DeleteWithReplies(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE parent_id = $1", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id); err != nil {
		return err
	}

	return tx.Commit()
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}
