package post

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for posts.
type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, req CreatePostRequest) (*Detail, error)
	GetBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*Detail, error)
	Update(ctx context.Context, id, callerID uuid.UUID, req UpdatePostRequest) (*Detail, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
	List(ctx context.Context, filter ListFilter) (*ListResponse, error)
}
