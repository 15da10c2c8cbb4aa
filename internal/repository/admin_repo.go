package repository

import (
	"context"

	"github.com/blog-platform-api/internal/database"
)

// adminRepo is the concrete implementation of AdminRepository
type adminRepo struct {
	db *database.DB
}

// NewAdminRepo creates a new admin repository
func NewAdminRepo(db *database.DB) AdminRepository {
	return &adminRepo{db: db}
}

// IsAdmin checks the allow-list: row existence alone grants admin
func (r *adminRepo) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM admins WHERE id = $1)", userID).Scan(&exists)
	return exists, err
}
