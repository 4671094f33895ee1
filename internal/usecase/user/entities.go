package user

import "time"

type RegisterInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

type CreateAdminInput struct {
	FullName string
	Email    string
	Password string
}

// UpdateProfileInput carries the fields to change; nil means unchanged.
type UpdateProfileInput struct {
	FullName *string
	Email    *string
	Password *string
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

type UserDTO struct {
	ID         uint64    `json:"id"`
	FullName   string    `json:"fullname"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}
