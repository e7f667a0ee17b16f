package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inventory-tracker/internal/apperr"
	"inventory-tracker/internal/model"
	"inventory-tracker/internal/repository"
)

type UserService interface {
	CreateUser(ctx context.Context, actor model.Actor, req CreateUserRequest) (*model.UserResponse, error)
	UpdateUser(ctx context.Context, actor model.Actor, userID uuid.UUID, req UpdateUserRequest) (*model.UserResponse, error)
	DeleteUser(ctx context.Context, actor model.Actor, userID uuid.UUID) error
	GetAllUsers(ctx context.Context) ([]model.UserResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.UserResponse, error)
	RegisterUser(ctx context.Context, req RegisterRequest) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"notblank,max=255"`
	RoleCode string `json:"role" validate:"required"`
}

// RegisterRequest is a public sign-up. The role is not selectable.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"notblank,max=255"`
}

type UpdateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	FullName string  `json:"full_name" validate:"notblank,max=255"`
	RoleCode string  `json:"role" validate:"required"`
	IsActive *bool   `json:"is_active"`
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

func (s *userService) CreateUser(ctx context.Context, actor model.Actor, req CreateUserRequest) (*model.UserResponse, error) {
	req.Email = model.NormalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	if err := s.checkEmail(ctx, req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	role, err := s.role(ctx, req.RoleCode)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		FullName:     strings.TrimSpace(req.FullName),
		RoleID:       &role.ID,
		IsActive:     true,
		TokenVersion: uuid.NewString(),
	}
	user.CreatedBy = actor.AuditName()
	user.UpdatedBy = actor.AuditName()

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.Role = role

	res := user.ToResponse()
	return &res, nil
}

// RegisterUser creates a self-service account with the read-only VIEWER role.
func (s *userService) RegisterUser(ctx context.Context, req RegisterRequest) (*model.UserResponse, error) {
	return s.CreateUser(ctx, model.Actor{}, CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		RoleCode: model.RoleViewer,
	})
}

func (s *userService) UpdateUser(ctx context.Context, actor model.Actor, userID uuid.UUID, req UpdateUserRequest) (*model.UserResponse, error) {
	req.Email = model.NormalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, lookup(err, apperr.ErrUserNotFound, "find user")
	}

	if req.Email != user.Email {
		if err := s.checkEmail(ctx, req.Email, user.ID); err != nil {
			return nil, err
		}
	}

	role, err := s.role(ctx, req.RoleCode)
	if err != nil {
		return nil, err
	}

	user.Email = req.Email
	user.FullName = strings.TrimSpace(req.FullName)
	user.RoleID = &role.ID
	user.Role = role
	user.UpdatedBy = actor.AuditName()

	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	// A password change also signs the user out everywhere
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.TokenVersion = uuid.NewString()
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	res := user.ToResponse()
	return &res, nil
}

func (s *userService) DeleteUser(ctx context.Context, actor model.Actor, userID uuid.UUID) error {
	if userID == actor.UserID {
		return apperr.ErrForbidden.Msgf("cannot delete your own account")
	}
	if err := s.userRepo.Delete(ctx, userID, actor.AuditName()); err != nil {
		return lookup(err, apperr.ErrUserNotFound, "delete user")
	}
	return nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	res := make([]model.UserResponse, len(users))
	for i := range users {
		res[i] = users[i].ToResponse()
	}
	return res, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, apperr.ErrUserNotFound, "find user")
	}
	res := user.ToResponse()
	return &res, nil
}

func (s *userService) checkEmail(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find user by email: %w", err)
	}
	if existing.ID != self {
		return apperr.ErrEmailExists
	}
	return nil
}

func (s *userService) role(ctx context.Context, code string) (*model.Role, error) {
	role, err := s.roleRepo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, lookup(err, apperr.ErrRoleNotFound, "find role")
	}
	return role, nil
}
