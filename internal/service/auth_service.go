package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/metrics"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// uniqueViolation is the Postgres error code for duplicate keys
const uniqueViolation = "23505"

// stateTTL bounds how long an issued OAuth state stays valid. Redirects
// the user abandoned never see a callback, so stale entries are pruned
// whenever a new state is issued.
const stateTTL = 10 * time.Minute

// authService implements AuthService on top of the local user store.
// It replaces the hosted identity provider: password accounts,
// sessions, email confirmation, the Google OAuth code flow, and the
// auth-state-change fanout all live here.
type authService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	admins   repository.AdminRepository
	cfg      *config.Config
	notifier *auth.Notifier
	oauth    *auth.OAuthClient
	log      zerolog.Logger

	// one-shot OAuth state guard: issued states live here until the
	// callback consumes them (waiting -> handled, terminal) or they
	// outlive stateTTL
	mu     sync.Mutex
	states map[string]time.Time
}

// newAuthService creates the auth service
func newAuthService(repos *repository.Repositories, cfg *config.Config, notifier *auth.Notifier, oauthClient *auth.OAuthClient, log zerolog.Logger) AuthService {
	return &authService{
		users:    repos.User,
		sessions: repos.Session,
		admins:   repos.Admin,
		cfg:      cfg,
		notifier: notifier,
		oauth:    oauthClient,
		log:      log.With().Str("component", "auth_service").Logger(),
		states:   make(map[string]time.Time),
	}
}

// SignUp registers a password account and issues a confirmation token.
// The duplicate pre-check gives OAuth users a pointer to their
// provider instead of a generic uniqueness error.
func (s *authService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w via %s", ErrEmailTaken, existing.Provider)
	}

	hash, err := auth.HashPassword(password, s.cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Provider:     models.ProviderEmail,
		CreatedAt:    now,
	}

	if !s.cfg.Auth.RequireConfirm {
		user.EmailConfirmedAt = &now
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The pre-check races with concurrent signups; the unique
		// index is the real arbiter.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.cfg.Auth.RequireConfirm {
		token := uuid.New().String()
		if err := s.users.CreateConfirmation(ctx, token, user.ID); err != nil {
			return nil, fmt.Errorf("failed to create confirmation: %w", err)
		}
		// No mail transport is wired; the link is logged for the
		// operator to relay.
		s.log.Info().
			Str("user_id", user.ID).
			Str("confirmation_url", fmt.Sprintf("%s?token=%s", s.cfg.Auth.ConfirmationURL, token)).
			Msg("Confirmation link issued")
	}

	metrics.SignupsTotal.Inc()
	s.log.Info().Str("user_id", user.ID).Msg("User signed up")
	return user, nil
}

// SignIn verifies password credentials and issues a session. Accounts
// with an unconfirmed email are force-signed-out: any sessions are
// revoked and the login fails.
func (s *authService) SignIn(ctx context.Context, email, password string) (*models.Session, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, ErrInvalidCredentials
	}

	if s.cfg.Auth.RequireConfirm && !user.Confirmed() {
		if err := s.sessions.DeleteByUser(ctx, user.ID); err != nil {
			s.log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to revoke sessions")
		}
		metrics.LoginsTotal.WithLabelValues("unconfirmed").Inc()
		return nil, nil, ErrEmailNotConfirmed
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return session, user, nil
}

func (s *authService) issueSession(ctx context.Context, user *models.User) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.Auth.SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.notifier.Publish(models.AuthEvent{
		Type:   models.AuthEventSignedIn,
		UserID: user.ID,
		Email:  user.Email,
		At:     now,
	})

	return session, nil
}

// SignOut revokes the session for the given token
func (s *authService) SignOut(ctx context.Context, token string) error {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil {
		return ErrUnauthorized
	}

	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.notifier.Publish(models.AuthEvent{
		Type:   models.AuthEventSignedOut,
		UserID: session.UserID,
		At:     time.Now(),
	})

	return nil
}

// Resolve turns a bearer token into a request identity. An empty,
// unknown, or expired token resolves to nil (anonymous) without error;
// expired sessions are reaped on the way.
func (s *authService) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil {
		return nil, nil
	}
	if session.Expired(time.Now()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.log.Error().Err(err).Msg("Failed to delete expired session")
		}
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	isAdmin, err := s.admins.IsAdmin(ctx, user.ID)
	if err != nil {
		// Failing open would grant nothing; failing closed only costs
		// the admin controls for this request.
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("Admin check failed")
		isAdmin = false
	}

	return &models.Identity{
		Session: session,
		User:    user,
		IsAdmin: isAdmin,
	}, nil
}

// ConfirmEmail consumes a confirmation token and stamps the user
func (s *authService) ConfirmEmail(ctx context.Context, token string) error {
	userID, err := s.users.ConsumeConfirmation(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to consume confirmation: %w", err)
	}
	if userID == "" {
		return ErrInvalidToken
	}

	now := time.Now()
	if err := s.users.ConfirmEmail(ctx, userID, now); err != nil {
		return fmt.Errorf("failed to confirm email: %w", err)
	}

	s.notifier.Publish(models.AuthEvent{
		Type:   models.AuthEventConfirmed,
		UserID: userID,
		At:     now,
	})

	s.log.Info().Str("user_id", userID).Msg("Email confirmed")
	return nil
}

// CheckUser is the signup pre-check: does an account with this email
// exist, and through which provider was it registered?
func (s *authService) CheckUser(ctx context.Context, email string) (*models.UserCheck, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return &models.UserCheck{Exists: false}, nil
	}
	return &models.UserCheck{Exists: true, Provider: user.Provider}, nil
}

// OAuthRedirectURL issues a one-shot state and builds the provider
// redirect URL for it. Stale states are reclaimed here so abandoned
// redirects cannot grow the map without bound.
func (s *authService) OAuthRedirectURL() string {
	state := uuid.New().String()
	now := time.Now()

	s.mu.Lock()
	for stale, issued := range s.states {
		if now.Sub(issued) > stateTTL {
			delete(s.states, stale)
		}
	}
	s.states[state] = now
	s.mu.Unlock()

	return s.oauth.AuthCodeURL(state)
}

// consumeState transitions a state from waiting to handled. The
// transition fires at most once per state, and never for a state
// older than stateTTL.
func (s *authService) consumeState(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	issued, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)
	return time.Since(issued) <= stateTTL
}

// HandleOAuthCallback exchanges the provider code, upserts the user
// and issues a session. Provider-verified emails count as confirmed.
func (s *authService) HandleOAuthCallback(ctx context.Context, code, state string) (*models.Session, *models.User, error) {
	if !s.consumeState(state) {
		return nil, nil, ErrInvalidState
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("oauth exchange failed: %w", err)
	}

	info, err := s.oauth.UserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, nil, fmt.Errorf("oauth userinfo failed: %w", err)
	}

	user, err := s.users.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		now := time.Now()
		user = &models.User{
			ID:               uuid.New().String(),
			Email:            strings.ToLower(info.Email),
			Provider:         models.ProviderGoogle,
			EmailConfirmedAt: &now,
			CreatedAt:        now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, nil, fmt.Errorf("failed to create oauth user: %w", err)
		}
		metrics.SignupsTotal.Inc()
		s.log.Info().Str("user_id", user.ID).Msg("OAuth user created")
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("oauth").Inc()
	return session, user, nil
}

// Subscribe registers an auth-state-change listener
func (s *authService) Subscribe() (<-chan models.AuthEvent, func()) {
	return s.notifier.Subscribe()
}
