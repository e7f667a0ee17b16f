package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inventory-tracker/internal/apperr"
	"inventory-tracker/internal/model"
	"inventory-tracker/internal/repository"
	"inventory-tracker/pkg/jwt"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResponse, error)
	Authenticate(ctx context.Context, tokenString string) (*Principal, error)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token      string             `json:"token"`
	ExpiresAt  time.Time          `json:"expires_at"`
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`       // Direct role object
	Privileges []string           `json:"privileges"` // Flat privileges array for easy checking
}

type TokenValidationResponse struct {
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

// Principal is an authenticated caller: who they are and what they may do.
type Principal struct {
	Actor      model.Actor
	Privileges []string
}

func (p *Principal) Has(code string) bool {
	for _, c := range p.Privileges {
		if c == code {
			return true
		}
	}
	return false
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, ttl time.Duration) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	req.Email = model.NormalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, apperr.ErrUserInactive
	}

	// 3. Verify password
	if !user.CheckPassword(req.Password) {
		return nil, apperr.ErrInvalidCredentials
	}

	// 4. Single session: a new token version invalidates older tokens
	tokenVersion := uuid.NewString()
	now := s.now()
	if err := s.userRepo.RecordLogin(ctx, user.ID, tokenVersion, now); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	user.TokenVersion = tokenVersion
	user.LastLoginAt = &now

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.FullName, user.RoleCode(), user.GetPrivilegeCodes(), tokenVersion)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResponse{
		Token:      token,
		ExpiresAt:  now.Add(s.ttl),
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

// ResetPassword requires the current password. Existing tokens stop working.
func (s *authService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	req.Email = model.NormalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return lookup(err, apperr.ErrUserNotFound, "find user")
	}

	if !user.CheckPassword(req.OldPassword) {
		return apperr.ErrWrongPassword
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, user.Password); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResponse, error) {
	user, err := s.resolve(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	return &TokenValidationResponse{
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

// Authenticate resolves a bearer token to the acting user. Privileges come
// from the user's current role rather than the token.
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*Principal, error) {
	user, err := s.resolve(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	return &Principal{
		Actor: model.Actor{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.FullName,
			Role:   user.RoleCode(),
		},
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) resolve(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, apperr.ErrInvalidToken.WrapParent(err)
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidToken.Msgf("user no longer exists")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.IsActive {
		return nil, apperr.ErrUserInactive
	}

	// Strict session: only the latest login's token is valid
	if user.TokenVersion != claims.TokenVersion {
		return nil, apperr.ErrSessionExpired
	}
	return user, nil
}
