package post

import "errors"

var (
	// Validation
	ErrFieldsRequired = errors.New("title and content are required")
	ErrInvalidTitle   = errors.New("title cannot be empty")

	// Not Found
	ErrPostNotFound = errors.New("post not found")

	// Ownership
	ErrNotOwner = errors.New("you can only modify your own posts")

	// Conflict
	ErrSlugConflict = errors.New("a post with this slug already exists")
)
