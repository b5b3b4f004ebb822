package tag

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrTagNotFound = errors.New("tag not found")

// Tag is a free-form label attached to posts through an association
// table. PostCount only counts published posts.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	PostCount int       `json:"postCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository interface {
	// List returns all tags ordered by name.
	List(ctx context.Context) ([]Tag, error)

	// GetBySlug returns ErrTagNotFound when absent.
	GetBySlug(ctx context.Context, slug string) (*Tag, error)
}

type Service interface {
	List(ctx context.Context) ([]Tag, error)
	GetBySlug(ctx context.Context, slug string) (*Tag, error)
}
