package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sheeto/backend/internal/domain/identity"
	"github.com/sheeto/backend/internal/domain/shared"
	"github.com/sheeto/backend/internal/infrastructure/auth"
)

// AuthService handles registration, login and account self-service
type AuthService struct {
	userRepo identity.UserRepository
	jwt      *auth.JWTService
	eventBus shared.EventPublisher
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwt *auth.JWTService, eventBus shared.EventPublisher, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwt,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Register creates a customer account and signs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Name, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, user)

	s.logger.Info("account registered", zap.String("user_id", user.ID.String()))

	return s.signIn(ctx, user)
}

// Login authenticates by email and password. Wrong email and wrong password
// return the same error so the response does not reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// A failed login stamp should not block the login itself
		s.logger.Warn("failed to record login time", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return s.signIn(ctx, user)
}

// ChangePassword replaces the authenticated user's password
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.SetPassword(req.Password); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("user_id", user.ID.String()))
	return nil
}

// Me returns the authenticated user's account
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (s *AuthService) signIn(ctx context.Context, user *identity.User) (*AuthResponse, error) {
	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		User:  ToUserResponse(user),
		Token: token,
	}, nil
}

func (s *AuthService) publishEvents(ctx context.Context, user *identity.User) {
	if s.eventBus == nil {
		return
	}
	events := user.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventBus.Publish(ctx, events...)
	user.ClearDomainEvents()
}
