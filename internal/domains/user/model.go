package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. The password hash never serializes.
type User struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FullName        *string   `json:"fullName"`
	AvatarURL       *string   `json:"avatarUrl"`
	Bio             *string   `json:"bio"`
	Website         *string   `json:"website"`
	GithubUsername  *string   `json:"githubUsername"`
	TwitterUsername *string   `json:"twitterUsername"`
	PasswordHash    string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
