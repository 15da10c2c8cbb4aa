package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blog-platform-api/internal/metrics"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// commentService implements CommentService with one-level threading
type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	log      zerolog.Logger
}

// newCommentService creates the comment service
func newCommentService(comments repository.CommentRepository, posts repository.PostRepository, log zerolog.Logger) CommentService {
	return &commentService{
		comments: comments,
		posts:    posts,
		log:      log.With().Str("component", "comment_service").Logger(),
	}
}

// ListThreads returns a post's comments grouped into top-level
// comments with their direct replies, both in creation order.
func (s *commentService) ListThreads(ctx context.Context, postID int64) ([]*models.CommentThread, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	replies := lo.GroupBy(
		lo.Filter(comments, func(c *models.Comment, _ int) bool { return !c.TopLevel() }),
		func(c *models.Comment) int64 { return *c.ParentID },
	)

	threads := lo.FilterMap(comments, func(c *models.Comment, _ int) (*models.CommentThread, bool) {
		if !c.TopLevel() {
			return nil, false
		}
		return &models.CommentThread{
			Comment: *c,
			Replies: replies[c.ID],
		}, true
	})

	return threads, nil
}

// Create adds a comment or a reply. Replies may only target top-level
// comments on the same post; deeper nesting is rejected.
func (s *commentService) Create(ctx context.Context, ident *models.Identity, postID int64, parentID *int64, content string) (*models.Comment, error) {
	if ident == nil || ident.User == nil {
		return nil, ErrUnauthorized
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}

	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get parent comment: %w", err)
		}
		if parent == nil || parent.PostID != postID {
			return nil, ErrNotFound
		}
		if !parent.TopLevel() {
			return nil, ErrReplyDepth
		}
	}

	comment := &models.Comment{
		PostID:    postID,
		ParentID:  parentID,
		UserID:    ident.User.ID,
		Email:     ident.User.Email,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	metrics.CommentsCreatedTotal.Inc()
	s.log.Info().
		Int64("comment_id", comment.ID).
		Int64("post_id", postID).
		Bool("reply", parentID != nil).
		Msg("Comment created")
	return comment, nil
}

// Delete removes a comment and its direct replies; only the comment's
// owner or an admin may.
func (s *commentService) Delete(ctx context.Context, ident *models.Identity, id int64) error {
	if ident == nil || ident.User == nil {
		return ErrUnauthorized
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return ErrNotFound
	}
	if !ident.CanModify(comment.UserID) {
		return ErrForbidden
	}

	if err := s.comments.DeleteWithReplies(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.log.Info().Int64("comment_id", id).Str("user_id", ident.User.ID).Msg("Comment deleted")
	return nil
}
