package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// Create inserts a new user
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, provider, email_confirmed_at, created_at, updated_at)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Provider,
		user.EmailConfirmedAt, user.CreatedAt, time.Now(),
	)
	return err
}

// GetByID retrieves a user by ID
func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, provider, email_confirmed_at, created_at, updated_at
		FROM users WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, provider, email_confirmed_at, created_at, updated_at
		FROM users WHERE email = lower($1)
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepo) scanOne(row *sql.Row) (*models.User, error) {
	var user models.User
	var confirmedAt sql.NullTime

	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Provider,
		&confirmedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if confirmedAt.Valid {
		user.EmailConfirmedAt = &confirmedAt.Time
	}
	return &user, nil
}

// ConfirmEmail stamps the confirmation time on a user
func (r *userRepo) ConfirmEmail(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE users SET email_confirmed_at = $2, updated_at = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, at, time.Now())
	return err
}

// CreateConfirmation stores a pending email confirmation token
func (r *userRepo) CreateConfirmation(ctx context.Context, token, userID string) error {
	query := `INSERT INTO email_confirmations (token, user_id, created_at) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, token, userID, time.Now())
	return err
}

// ConsumeConfirmation deletes a confirmation token and returns its
// user id. A token can only ever be consumed once.
func (r *userRepo) ConsumeConfirmation(ctx context.Context, token string) (string, error) {
	query := `DELETE FROM email_confirmations WHERE token = $1 RETURNING user_id`

	var userID string
	err := r.db.QueryRowContext(ctx, query, token).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Count returns the total number of users
func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
