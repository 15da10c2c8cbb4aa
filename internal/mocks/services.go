package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
	"github.com/google/uuid"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mu           sync.Mutex
	Identities   map[string]*models.Identity // token -> identity
	Checks       map[string]*models.UserCheck
	SignUpFunc   func(ctx context.Context, email, password string) (*models.User, error)
	SignInFunc   func(ctx context.Context, email, password string) (*models.Session, *models.User, error)
	CallbackFunc func(ctx context.Context, code, state string) (*models.Session, *models.User, error)
	ConfirmErr   error
	SignedOut    []string
	Events       chan models.AuthEvent
}

// Verify interface compliance
var _ service.AuthService = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{
		Identities: make(map[string]*models.Identity),
		Checks:     make(map[string]*models.UserCheck),
		Events:     make(chan models.AuthEvent, 16),
	}
}

// AddIdentity registers a bearer token resolving to the given user
func (m *MockAuthService) AddIdentity(token string, user *models.User, isAdmin bool) *models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	ident := &models.Identity{
		Session: &models.Session{
			Token:     token,
			UserID:    user.ID,
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(time.Hour),
		},
		User:    user,
		IsAdmin: isAdmin,
	}
	m.Identities[token] = ident
	return ident
}

func (m *MockAuthService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, email, password)
	}
	return &models.User{ID: uuid.New().String(), Email: email, Provider: models.ProviderEmail}, nil
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*models.Session, *models.User, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	user := &models.User{ID: uuid.New().String(), Email: email}
	session := &models.Session{Token: uuid.New().String(), UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	return session, user, nil
}

func (m *MockAuthService) SignOut(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Identities, token)
	m.SignedOut = append(m.SignedOut, token)
	return nil
}

func (m *MockAuthService) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Identities[token], nil
}

func (m *MockAuthService) ConfirmEmail(ctx context.Context, token string) error {
	if m.ConfirmErr != nil {
		return m.ConfirmErr
	}
	return nil
}

func (m *MockAuthService) CheckUser(ctx context.Context, email string) (*models.UserCheck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if check, ok := m.Checks[email]; ok {
		return check, nil
	}
	return &models.UserCheck{Exists: false}, nil
}

func (m *MockAuthService) OAuthRedirectURL() string {
	return "https://accounts.example.com/auth?state=" + uuid.New().String()
}

func (m *MockAuthService) HandleOAuthCallback(ctx context.Context, code, state string) (*models.Session, *models.User, error) {
	if m.CallbackFunc != nil {
		return m.CallbackFunc(ctx, code, state)
	}
	return nil, nil, service.ErrInvalidState
}

func (m *MockAuthService) Subscribe() (<-chan models.AuthEvent, func()) {
	return m.Events, func() {}
}

// MockPostService is a mock implementation of PostService
type MockPostService struct {
	ListFunc   func(ctx context.Context, search string) ([]*models.Post, error)
	GetFunc    func(ctx context.Context, id int64) (*models.Post, error)
	CreateFunc func(ctx context.Context, ident *models.Identity, title, content string) (*models.Post, error)
	UpdateFunc func(ctx context.Context, ident *models.Identity, id int64, title, content string) (*models.Post, error)
	DeleteFunc func(ctx context.Context, ident *models.Identity, id int64) error
}

// Verify interface compliance
var _ service.PostService = (*MockPostService)(nil)

func NewMockPostService() *MockPostService {
	return &MockPostService{}
}

func (m *MockPostService) List(ctx context.Context, search string) ([]*models.Post, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, search)
	}
	return nil, nil
}

func (m *MockPostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, service.ErrNotFound
}

func (m *MockPostService) Create(ctx context.Context, ident *models.Identity, title, content string) (*models.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ident, title, content)
	}
	return &models.Post{ID: 1, Title: title, Content: content, UserID: ident.User.ID, CreatedAt: time.Now()}, nil
}

func (m *MockPostService) Update(ctx context.Context, ident *models.Identity, id int64, title, content string) (*models.Post, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ident, id, title, content)
	}
	return nil, service.ErrNotFound
}

func (m *MockPostService) Delete(ctx context.Context, ident *models.Identity, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ident, id)
	}
	return service.ErrNotFound
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	ListFunc   func(ctx context.Context, postID int64) ([]*models.CommentThread, error)
	CreateFunc func(ctx context.Context, ident *models.Identity, postID int64, parentID *int64, content string) (*models.Comment, error)
	DeleteFunc func(ctx context.Context, ident *models.Identity, id int64) error
}

// Verify interface compliance
var _ service.CommentService = (*MockCommentService)(nil)

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{}
}

func (m *MockCommentService) ListThreads(ctx context.Context, postID int64) ([]*models.CommentThread, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, postID)
	}
	return nil, nil
}

func (m *MockCommentService) Create(ctx context.Context, ident *models.Identity, postID int64, parentID *int64, content string) (*models.Comment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ident, postID, parentID, content)
	}
	return &models.Comment{ID: 1, PostID: postID, ParentID: parentID, UserID: ident.User.ID, Content: content, CreatedAt: time.Now()}, nil
}

func (m *MockCommentService) Delete(ctx context.Context, ident *models.Identity, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ident, id)
	}
	return service.ErrNotFound
}
