package service_test

import (
	"testing"
	"time"

	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/mocks"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/blog-platform-api/internal/service"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// testEnv bundles services with the concrete mocks behind them
type testEnv struct {
	services *service.Services
	users    *mocks.MockUserRepository
	sessions *mocks.MockSessionRepository
	posts    *mocks.MockPostRepository
	comments *mocks.MockCommentRepository
	admins   *mocks.MockAdminRepository
	notifier *auth.Notifier
	cfg      *config.Config
}

func newTestEnv(t *testing.T, mutate func(cfg *config.Config)) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			SessionTTL:      time.Hour,
			SessionSweep:    time.Minute,
			BcryptCost:      bcrypt.MinCost,
			MinPasswordLen:  8,
			RequireConfirm:  true,
			ConfirmationURL: "http://localhost:8080/v1/auth/confirm",
		},
		OAuth: config.OAuthConfig{
			GoogleClientID:     "client-id",
			GoogleClientSecret: "client-secret",
			RedirectURL:        "http://localhost:8080/v1/auth/callback",
			AuthURL:            "https://accounts.example.com/auth",
			TokenURL:           "https://accounts.example.com/token",
			UserInfoURL:        "https://accounts.example.com/userinfo",
		},
	}
	if mutate != nil {
		mutate(cfg)
	}

	env := &testEnv{
		users:    mocks.NewMockUserRepository(),
		sessions: mocks.NewMockSessionRepository(),
		posts:    mocks.NewMockPostRepository(),
		comments: mocks.NewMockCommentRepository(),
		admins:   mocks.NewMockAdminRepository(),
		notifier: auth.NewNotifier(zerolog.Nop()),
		cfg:      cfg,
	}

	repos := &repository.Repositories{
		User:    env.users,
		Session: env.sessions,
		Post:    env.posts,
		Comment: env.comments,
		Admin:   env.admins,
	}

	oauthClient := auth.NewOAuthClient(&cfg.OAuth, zerolog.Nop())
	t.Cleanup(func() { oauthClient.Close() })

	env.services = service.NewServices(repos, cfg, env.notifier, oauthClient, zerolog.Nop())
	return env
}

// seedUser inserts a confirmed user directly into the mock repo
func (e *testEnv) seedUser(t *testing.T, email string) *models.User {
	t.Helper()

	now := time.Now()
	user := &models.User{
		ID:               uuid.New().String(),
		Email:            email,
		Provider:         models.ProviderEmail,
		EmailConfirmedAt: &now,
		CreatedAt:        now,
	}
	e.users.Users[user.ID] = user
	return user
}

func ident(user *models.User, isAdmin bool) *models.Identity {
	return &models.Identity{
		Session: &models.Session{Token: uuid.New().String(), UserID: user.ID},
		User:    user,
		IsAdmin: isAdmin,
	}
}
