package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/sheeto/backend/internal/domain/identity"
	"github.com/sheeto/backend/internal/infrastructure/auth"
)

// RegisterRequest represents a request to create a customer account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=200"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest represents a password change for the
// authenticated user
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UserResponse represents an account in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse carries the account and its access token after register/login
type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token *auth.Token   `json:"token"`
}

// ToUserResponse converts a domain user to its response form
func ToUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
