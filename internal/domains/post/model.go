package post

import (
	"time"

	"github.com/google/uuid"
)

// Post is the persisted entity. JSON names follow the public API
// contract (camelCase), database columns are snake_case.
type Post struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Content        string     `json:"content,omitempty"`
	Excerpt        *string    `json:"excerpt"`
	CoverImage     *string    `json:"coverImage"`
	AuthorID       uuid.UUID  `json:"authorId"`
	CategoryID     *uuid.UUID `json:"categoryId"`
	IsPublished    bool       `json:"isPublished"`
	IsPinned       bool       `json:"isPinned"`
	ViewCount      int        `json:"viewCount"`
	LikeCount      int        `json:"likeCount"`
	CommentCount   int        `json:"commentCount"`
	ReadingTime    int        `json:"readingTime"`
	SeoTitle       *string    `json:"seoTitle,omitempty"`
	SeoDescription *string    `json:"seoDescription,omitempty"`
	PublishedAt    *time.Time `json:"publishedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// AuthorRef is the denormalized author block on a post response.
type AuthorRef struct {
	ID        uuid.UUID `json:"id"`
	FullName  *string   `json:"fullName"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatarUrl"`
}

// CategoryRef is the denormalized category block on a post response.
type CategoryRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Color *string   `json:"color"`
}

// TagRef is a tag entry on a post response.
type TagRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Detail is a post joined with its author, category and tags, the
// shape every read endpoint returns.
type Detail struct {
	Post
	Author   AuthorRef    `json:"author"`
	Category *CategoryRef `json:"category"`
	Tags     []TagRef     `json:"tags"`
}
