package service

import (
	"context"

	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/rs/zerolog"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, *models.User, error)
	SignOut(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*models.Identity, error)
	ConfirmEmail(ctx context.Context, token string) error
	CheckUser(ctx context.Context, email string) (*models.UserCheck, error)
	OAuthRedirectURL() string
	HandleOAuthCallback(ctx context.Context, code, state string) (*models.Session, *models.User, error)
	Subscribe() (<-chan models.AuthEvent, func())
}

// PostService defines the interface for post operations
type PostService interface {
	List(ctx context.Context, search string) ([]*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, ident *models.Identity, title, content string) (*models.Post, error)
	Update(ctx context.Context, ident *models.Identity, id int64, title, content string) (*models.Post, error)
	Delete(ctx context.Context, ident *models.Identity, id int64) error
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListThreads(ctx context.Context, postID int64) ([]*models.CommentThread, error)
	Create(ctx context.Context, ident *models.Identity, postID int64, parentID *int64, content string) (*models.Comment, error)
	Delete(ctx context.Context, ident *models.Identity, id int64) error
}

// Services holds all service interfaces
type Services struct {
	Auth    AuthService
	Post    PostService
	Comment CommentService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, notifier *auth.Notifier, oauthClient *auth.OAuthClient, log zerolog.Logger) *Services {
	return &Services{
		Auth:    newAuthService(repos, cfg, notifier, oauthClient, log),
		Post:    newPostService(repos.Post, log),
		Comment: newCommentService(repos.Comment, repos.Post, log),
	}
}
