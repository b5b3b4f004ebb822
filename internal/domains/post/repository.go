package post

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for posts.
type Repository interface {
	// Create inserts the post row and one association row per tag id.
	Create(ctx context.Context, p *Post, tagIDs []uuid.UUID) error

	// GetByID loads the bare post row. Returns ErrPostNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// GetDetailByID loads a post with author, category and tags,
	// regardless of published state.
	GetDetailByID(ctx context.Context, id uuid.UUID) (*Detail, error)

	// GetDetailBySlug resolves a post visible to viewerID: published,
	// or any state when the viewer is the author. Returns
	// ErrPostNotFound when absent or not visible.
	GetDetailBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*Detail, error)

	// IncrementViewCount bumps view_count atomically in the store.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	// Update writes the full post row.
	Update(ctx context.Context, p *Post) error

	// ReplaceTags deletes the post's association rows and inserts the
	// given set. Never a partial diff.
	ReplaceTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error

	// Delete removes the post row; associations go via cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of details plus the total match count.
	List(ctx context.Context, filter ListFilter) ([]Detail, int, error)

	// GenerateUniqueSlug probes for collisions and suffixes the base
	// slug until it is free. excludeID skips the post being updated.
	GenerateUniqueSlug(ctx context.Context, baseSlug string, excludeID uuid.UUID) (string, error)
}
