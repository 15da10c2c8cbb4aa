package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

// Create inserts a new post and fills in its generated id
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, content, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.UserID, post.CreatedAt, time.Now(),
	).Scan(&post.ID)
}

// GetByID retrieves a post by ID
func (r *postRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT id, title, content, user_id, created_at, updated_at
		FROM posts WHERE id = $1
	`

	var post models.Post
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.UserID,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves posts newest-first. A non-empty search term filters
// server-side by case-insensitive substring match on title or content.
func (r *postRepo) List(ctx context.Context, search string) ([]*models.Post, error) {
	query := `
		SELECT id, title, content, user_id, created_at, updated_at
		FROM posts ORDER BY created_at DESC
	`
	args := []interface{}{}

	if search != "" {
		query = `
			SELECT id, title, content, user_id, created_at, updated_at
			FROM posts
			WHERE title ILIKE $1 OR content ILIKE $1
			ORDER BY created_at DESC
		`
		args = append(args, "%"+search+"%")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var post models.Post
		err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.UserID,
			&post.CreatedAt, &post.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

// Update persists title and content changes
func (r *postRepo) Update(ctx context.Context, post *models.Post) error {
	query := `UPDATE posts SET title = $2, content = $3, updated_at = $4 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, post.ID, post.Title, post.Content, time.Now())
	return err
}

// Delete removes a post and, via FK cascade, its comments
func (r *postRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	return err
}

// Count returns the total number of posts
func (r *postRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}
