package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/blog-platform-api/internal/metrics"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/rs/zerolog"
)

// postService implements PostService. Ownership and admin checks are
// enforced here, not in the presentation tier.
type postService struct {
	posts repository.PostRepository
	log   zerolog.Logger
}

// newPostService creates the post service
func newPostService(posts repository.PostRepository, log zerolog.Logger) PostService {
	return &postService{
		posts: posts,
		log:   log.With().Str("component", "post_service").Logger(),
	}
}

// List returns posts newest-first, optionally filtered by a
// case-insensitive substring search over title or content.
func (s *postService) List(ctx context.Context, search string) ([]*models.Post, error) {
	posts, err := s.posts.List(ctx, strings.TrimSpace(search))
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list posts")
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Get returns a single post
func (s *postService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// Create inserts a new post owned by the acting user
func (s *postService) Create(ctx context.Context, ident *models.Identity, title, content string) (*models.Post, error) {
	if ident == nil || ident.User == nil {
		return nil, ErrUnauthorized
	}

	post := &models.Post{
		Title:     title,
		Content:   content,
		UserID:    ident.User.ID,
		CreatedAt: time.Now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	metrics.PostsCreatedTotal.Inc()
	s.log.Info().Int64("post_id", post.ID).Str("user_id", post.UserID).Msg("Post created")
	return post, nil
}

// Update changes title and content; only the owner or an admin may
func (s *postService) Update(ctx context.Context, ident *models.Identity, id int64, title, content string) (*models.Post, error) {
	if ident == nil || ident.User == nil {
		return nil, ErrUnauthorized
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !ident.CanModify(post.UserID) {
		return nil, ErrForbidden
	}

	post.Title = title
	post.Content = content
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.log.Info().Int64("post_id", post.ID).Str("user_id", ident.User.ID).Msg("Post updated")
	return post, nil
}

// Delete removes a post; only the owner or an admin may
func (s *postService) Delete(ctx context.Context, ident *models.Identity, id int64) error {
	if ident == nil || ident.User == nil {
		return ErrUnauthorized
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return ErrNotFound
	}
	if !ident.CanModify(post.UserID) {
		return ErrForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.log.Info().Int64("post_id", id).Str("user_id", ident.User.ID).Msg("Post deleted")
	return nil
}
