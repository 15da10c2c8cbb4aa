package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
)

func TestPostService_CreateRequiresSession(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.services.Post.Create(context.Background(), nil, "Title", "Content")
	if !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
}

func TestPostService_CreateAndGet(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	owner := env.seedUser(t, "owner@example.com")
	post, err := env.services.Post.Create(ctx, ident(owner, false), "Hello", "World")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.ID == 0 {
		t.Error("Created post should have an id")
	}
	if post.UserID != owner.ID {
		t.Errorf("Post owner should be %s, got %s", owner.ID, post.UserID)
	}

	got, err := env.services.Post.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Hello" {
		t.Errorf("Expected title Hello, got %q", got.Title)
	}

	if _, err := env.services.Post.Get(ctx, 9999); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing post, got %v", err)
	}
}

func TestPostService_UpdateAuthorization(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	owner := env.seedUser(t, "owner@example.com")
	other := env.seedUser(t, "other@example.com")
	admin := env.seedUser(t, "admin@example.com")

	post, err := env.services.Post.Create(ctx, ident(owner, false), "Original", "Body")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	tests := []struct {
		name    string
		ident   *models.Identity
		wantErr error
	}{
		{"anonymous", nil, service.ErrUnauthorized},
		{"non-owner", ident(other, false), service.ErrForbidden},
		{"owner", ident(owner, false), nil},
		{"admin", ident(admin, true), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.services.Post.Update(ctx, tt.ident, post.ID, "Changed by "+tt.name, "Body")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Update failed: %v", err)
				}
				got, _ := env.services.Post.Get(ctx, post.ID)
				if got.Title != "Changed by "+tt.name {
					t.Errorf("Update did not persist, title is %q", got.Title)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPostService_DeleteAuthorization(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	owner := env.seedUser(t, "owner@example.com")
	other := env.seedUser(t, "other@example.com")
	admin := env.seedUser(t, "admin@example.com")

	ownPost, _ := env.services.Post.Create(ctx, ident(owner, false), "Mine", "Body")
	adminTarget, _ := env.services.Post.Create(ctx, ident(owner, false), "Admin target", "Body")

	// A non-owner cannot delete
	if err := env.services.Post.Delete(ctx, ident(other, false), ownPost.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}

	// The owner can
	if err := env.services.Post.Delete(ctx, ident(owner, false), ownPost.ID); err != nil {
		t.Fatalf("Owner delete failed: %v", err)
	}

	// An admin can delete any post
	if err := env.services.Post.Delete(ctx, ident(admin, true), adminTarget.ID); err != nil {
		t.Fatalf("Admin delete failed: %v", err)
	}

	// Deleting a missing post reports not found
	if err := env.services.Post.Delete(ctx, ident(owner, false), ownPost.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPostService_ListOrderingAndSearch(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	owner := env.seedUser(t, "owner@example.com")
	base := time.Now()

	// Seed with controlled timestamps, oldest first
	seed := []struct {
		title   string
		content string
	}{
		{"Go generics deep dive", "Type parameters explained"},
		{"Weekend trip report", "We hiked all day"},
		{"Release notes", "The GO toolchain was updated"},
	}
	for i, p := range seed {
		env.posts.Create(ctx, &models.Post{
			Title:     p.title,
			Content:   p.content,
			UserID:    owner.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	// Newest first with no filter
	all, err := env.services.Post.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 posts, got %d", len(all))
	}
	if all[0].Title != "Release notes" || all[2].Title != "Go generics deep dive" {
		t.Errorf("Posts not ordered newest-first: %q, %q, %q", all[0].Title, all[1].Title, all[2].Title)
	}

	// Case-insensitive match on title OR content
	matched, err := env.services.Post.List(ctx, "go")
	if err != nil {
		t.Fatalf("List with search failed: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("Expected 2 matches for 'go', got %d", len(matched))
	}

	// Search is idempotent over an unchanged data set
	again, err := env.services.Post.List(ctx, "go")
	if err != nil {
		t.Fatalf("Repeat list failed: %v", err)
	}
	if len(again) != len(matched) {
		t.Fatalf("Repeat search changed result size: %d vs %d", len(again), len(matched))
	}
	for i := range matched {
		if matched[i].ID != again[i].ID {
			t.Errorf("Repeat search changed ordering at %d: %d vs %d", i, matched[i].ID, again[i].ID)
		}
	}

	// Surrounding whitespace is ignored
	trimmed, err := env.services.Post.List(ctx, "  go  ")
	if err != nil {
		t.Fatalf("List with padded search failed: %v", err)
	}
	if len(trimmed) != 2 {
		t.Errorf("Expected padded search to match 2 posts, got %d", len(trimmed))
	}
}
