package repository

import (
	"context"
	"time"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ConfirmEmail(ctx context.Context, id string, at time.Time) error
	CreateConfirmation(ctx context.Context, token, userID string) error
	ConsumeConfirmation(ctx context.Context, token string) (string, error)
	Count(ctx context.Context) (int, error)
}

// SessionRepository defines the interface for session data operations
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, search string) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	DeleteWithReplies(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// AdminRepository checks the admin allow-list
type AdminRepository interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Session SessionRepository
	Post    PostRepository
	Comment CommentRepository
	Admin   AdminRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Session: NewSessionRepo(db),
		Post:    NewPostRepo(db),
		Comment: NewCommentRepo(db),
		Admin:   NewAdminRepo(db),
	}
}
