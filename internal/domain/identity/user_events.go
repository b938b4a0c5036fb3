package identity

import (
	"github.com/sheeto/backend/internal/domain/shared"
)

const AggregateTypeUser = "User"

const (
	EventTypeUserRegistered = "user.registered"
)

// UserRegisteredEvent is emitted when a new account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// NewUserRegisteredEvent creates a new user registered event
func NewUserRegisteredEvent(u *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, u.ID),
		Email:           u.Email,
		Name:            u.Name,
		Role:            u.Role,
	}
}
