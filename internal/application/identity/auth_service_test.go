package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sheeto/backend/internal/domain/identity"
	"github.com/sheeto/backend/internal/domain/shared"
	"github.com/sheeto/backend/internal/infrastructure/auth"
	"github.com/sheeto/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-for-unit-tests-only",
		TokenExpiration: time.Hour,
		Issuer:          "sheeto-test",
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account and returns a token", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAuthService(repo, newTestJWT(), nil, zap.NewNop())

		repo.On("ExistsByEmail", ctx, "ali@example.com").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := service.Register(ctx, RegisterRequest{
			Email:    "ali@example.com",
			Name:     "Ali Hasan",
			Password: "secret12",
		})
		require.NoError(t, err)
		assert.Equal(t, "ali@example.com", resp.User.Email)
		assert.Equal(t, "customer", resp.User.Role)
		assert.NotEmpty(t, resp.Token.AccessToken)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAuthService(repo, newTestJWT(), nil, zap.NewNop())

		repo.On("ExistsByEmail", ctx, "ali@example.com").Return(true, nil)

		_, err := service.Register(ctx, RegisterRequest{
			Email:    "ali@example.com",
			Name:     "Ali Hasan",
			Password: "secret12",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		repo.AssertNotCalled(t, "Save")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	newUser := func(t *testing.T) *identity.User {
		t.Helper()
		user, err := identity.NewUser("ali@example.com", "Ali Hasan", "secret12")
		require.NoError(t, err)
		user.ClearDomainEvents()
		return user
	}

	t.Run("valid credentials sign in", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAuthService(repo, newTestJWT(), nil, zap.NewNop())
		user := newUser(t)

		repo.On("FindByEmail", ctx, "ali@example.com").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		resp, err := service.Login(ctx, LoginRequest{Email: "ali@example.com", Password: "secret12"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, resp.User.ID)
		assert.NotEmpty(t, resp.Token.AccessToken)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("wrong password and unknown email return the same error", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAuthService(repo, newTestJWT(), nil, zap.NewNop())
		user := newUser(t)

		repo.On("FindByEmail", ctx, "ali@example.com").Return(user, nil)
		repo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, wrongPass := service.Login(ctx, LoginRequest{Email: "ali@example.com", Password: "wrong123"})
		_, unknownEmail := service.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "secret12"})

		require.Error(t, wrongPass)
		require.Error(t, unknownEmail)
		assert.Equal(t, wrongPass.Error(), unknownEmail.Error())
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	repo := new(MockUserRepository)
	service := NewAuthService(repo, newTestJWT(), nil, zap.NewNop())

	user, err := identity.NewUser("ali@example.com", "Ali Hasan", "secret12")
	require.NoError(t, err)

	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	repo.On("Save", ctx, user).Return(nil)

	require.NoError(t, service.ChangePassword(ctx, user.ID, ChangePasswordRequest{Password: "newpass1"}))
	assert.True(t, user.VerifyPassword("newpass1"))
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()

	repo := new(MockUserRepository)
	service := NewAuthService(repo, newTestJWT(), nil, zap.NewNop())

	user, err := identity.NewUser("ali@example.com", "Ali Hasan", "secret12")
	require.NoError(t, err)

	repo.On("FindByID", ctx, user.ID).Return(user, nil)

	resp, err := service.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ali Hasan", resp.Name)
}
