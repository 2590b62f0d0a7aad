package service

import (
	"context"
	"errors"
	"fmt"

	"taskhub/internal/common"
	"taskhub/internal/common/security"
	"taskhub/internal/common/validation"
	"taskhub/internal/domain/model"
	"taskhub/internal/domain/repository"
	"taskhub/internal/platform/logging"

	"github.com/google/uuid"
)

// LoginThrottle bounds failed login attempts per account. A nil throttle
// disables the bound.
type LoginThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

type AuthService struct {
	userRepo repository.UserRepository
	throttle LoginThrottle
}

func NewAuthService(userRepo repository.UserRepository, throttle LoginThrottle) *AuthService {
	return &AuthService{userRepo: userRepo, throttle: throttle}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  *model.User
	Token string
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	// Duplicate email is a validation failure on this API, not a conflict.
	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, common.WithMessage(common.ErrValidation, "Email is already registered")
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Role:           role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup can still hit the unique constraint.
		if errors.Is(err, common.ErrConflict) {
			return nil, common.WithMessage(common.ErrValidation, "Email is already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logging.Log.WithFields(map[string]interface{}{
		"userId": user.ID,
		"email":  user.Email,
		"role":   user.Role,
	}).Info("User signed up")

	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check login throttle: %w", err)
		}
		if !allowed {
			logging.Log.WithFields(map[string]interface{}{
				"email": req.Email,
			}).Warn("Login attempts throttled")
			return nil, common.WithMessage(common.ErrTooManyRequests, "Too many login attempts, try again later")
		}
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.WithMessage(common.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		if s.throttle != nil {
			if err := s.throttle.RecordFailure(ctx, req.Email); err != nil {
				logging.Log.WithError(err).Warn("Failed to record login failure")
			}
		}
		// 400 on this API, not 401. Preserved as shipped.
		return nil, common.WithMessage(common.ErrValidation, "Invalid credentials")
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, req.Email); err != nil {
			logging.Log.WithError(err).Warn("Failed to reset login throttle")
		}
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logging.Log.WithFields(map[string]interface{}{
		"userId": user.ID,
		"email":  user.Email,
	}).Info("User logged in")

	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}
