package category

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCategoryNotFound = errors.New("category not found")

// Category groups posts into a single curated taxonomy. PostCount only
// counts published posts.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	Color       *string   `json:"color"`
	Icon        *string   `json:"icon"`
	PostCount   int       `json:"postCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Repository interface {
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]Category, error)

	// GetBySlug returns ErrCategoryNotFound when absent.
	GetBySlug(ctx context.Context, slug string) (*Category, error)
}

type Service interface {
	List(ctx context.Context) ([]Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
}
