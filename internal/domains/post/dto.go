package post

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// PublishedFilter makes the tri-state published criterion explicit
// instead of relying on an omitted-means-both convention.
type PublishedFilter int

const (
	PublishedAny PublishedFilter = iota
	PublishedOnly
	DraftsOnly
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// CreatePostRequest is the POST /posts body.
type CreatePostRequest struct {
	Title          string      `json:"title"`
	Content        string      `json:"content"`
	CategoryID     *uuid.UUID  `json:"categoryId"`
	TagIDs         []uuid.UUID `json:"tagIds"`
	IsPublished    bool        `json:"isPublished"`
	CoverImage     *string     `json:"coverImage"`
	SeoTitle       *string     `json:"seoTitle"`
	SeoDescription *string     `json:"seoDescription"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Content, validation.Required),
	)
}

// UpdatePostRequest is the PATCH /posts/:id body. Nil pointers mean
// "leave unchanged"; a nil TagIDs slice leaves the tag set alone while
// an empty one clears it.
type UpdatePostRequest struct {
	Title          *string      `json:"title"`
	Content        *string      `json:"content"`
	CategoryID     *uuid.UUID   `json:"categoryId"`
	TagIDs         *[]uuid.UUID `json:"tagIds"`
	IsPublished    *bool        `json:"isPublished"`
	IsPinned       *bool        `json:"isPinned"`
	CoverImage     *string      `json:"coverImage"`
	SeoTitle       *string      `json:"seoTitle"`
	SeoDescription *string      `json:"seoDescription"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty),
		validation.Field(&r.Content, validation.NilOrNotEmpty),
	)
}

// ListFilter is the composed criteria for the post listing.
type ListFilter struct {
	Page         int
	Limit        int
	CategorySlug string
	TagSlug      string
	Search       string
	AuthorID     uuid.UUID // uuid.Nil means no author filter
	Published    PublishedFilter
}

// Normalize clamps pagination to sane bounds.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
}

// Offset translates page/limit into a row offset.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pagination is the listing metadata block.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalCount int  `json:"totalCount"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination derives the metadata from a filter and total count.
func NewPagination(page, limit, totalCount int) Pagination {
	totalPages := (totalCount + limit - 1) / limit
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// ListResponse is the GET /posts body.
type ListResponse struct {
	Posts      []Detail   `json:"posts"`
	Pagination Pagination `json:"pagination"`
}
