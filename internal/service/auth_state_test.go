package service

import (
	"net/url"
	"testing"
	"time"

	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/repository"
	"github.com/rs/zerolog"
)

// newStateService builds an authService for exercising the OAuth state
// guard; the repositories are never touched on these paths.
func newStateService(t *testing.T) *authService {
	t.Helper()

	cfg := &config.Config{
		OAuth: config.OAuthConfig{
			GoogleClientID: "client-id",
			RedirectURL:    "http://localhost:8080/v1/auth/callback",
			AuthURL:        "https://accounts.example.com/auth",
		},
	}

	oauthClient := auth.NewOAuthClient(&cfg.OAuth, zerolog.Nop())
	t.Cleanup(func() { oauthClient.Close() })

	svc := newAuthService(&repository.Repositories{}, cfg, auth.NewNotifier(zerolog.Nop()), oauthClient, zerolog.Nop())
	return svc.(*authService)
}

func stateFromRedirect(t *testing.T, redirect string) string {
	t.Helper()

	parsed, err := url.Parse(redirect)
	if err != nil {
		t.Fatalf("Redirect URL does not parse: %v", err)
	}
	state := parsed.Query().Get("state")
	if state == "" {
		t.Fatal("Redirect URL should carry a state parameter")
	}
	return state
}

func TestOAuthState_AbandonedStatesArePruned(t *testing.T) {
	svc := newStateService(t)

	// Redirects nobody follows up on: age them past the TTL
	for i := 0; i < 100; i++ {
		stateFromRedirect(t, svc.OAuthRedirectURL())
	}
	svc.mu.Lock()
	for state := range svc.states {
		svc.states[state] = time.Now().Add(-stateTTL - time.Minute)
	}
	svc.mu.Unlock()

	// The next issue reclaims all of them
	fresh := stateFromRedirect(t, svc.OAuthRedirectURL())

	svc.mu.Lock()
	remaining := len(svc.states)
	_, freshKept := svc.states[fresh]
	svc.mu.Unlock()

	if remaining != 1 {
		t.Errorf("Expected only the fresh state to remain, got %d entries", remaining)
	}
	if !freshKept {
		t.Error("Fresh state should survive the prune")
	}
}

func TestOAuthState_ExpiredStateRejected(t *testing.T) {
	svc := newStateService(t)

	state := stateFromRedirect(t, svc.OAuthRedirectURL())

	svc.mu.Lock()
	svc.states[state] = time.Now().Add(-stateTTL - time.Minute)
	svc.mu.Unlock()

	if svc.consumeState(state) {
		t.Error("Expired state should not be consumable")
	}

	svc.mu.Lock()
	_, kept := svc.states[state]
	svc.mu.Unlock()
	if kept {
		t.Error("Rejected state should still be removed from the map")
	}
}

func TestOAuthState_ConsumeIsOneShot(t *testing.T) {
	svc := newStateService(t)

	state := stateFromRedirect(t, svc.OAuthRedirectURL())

	if !svc.consumeState(state) {
		t.Fatal("Fresh state should consume")
	}
	if svc.consumeState(state) {
		t.Error("A state must only ever consume once")
	}
}
