package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence interface for users
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (case insensitive)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks whether an account already uses the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save persists a user
	Save(ctx context.Context, u *User) error
}
