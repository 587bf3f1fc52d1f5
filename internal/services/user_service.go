package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"leave-manager/internal/models"
	"leave-manager/internal/repositories"
)

// UserServiceInterface defines user operations
type UserServiceInterface interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, input models.UserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, input models.UserInput) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) (*models.User, error)
	ListUserLeaves(ctx context.Context, id int64) ([]models.LeaveApplication, error)
}

// UserService implements UserServiceInterface
type UserService struct {
	userRepo  repositories.UserRepositoryInterface
	leaveRepo repositories.LeaveRepositoryInterface
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepositoryInterface, leaveRepo repositories.LeaveRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo, leaveRepo: leaveRepo}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// CreateUser stores a new user. The role defaults to employee; any other
// value is left for the storage constraint to accept or reject.
func (s *UserService) CreateUser(ctx context.Context, input models.UserInput) (*models.User, error) {
	user, err := userFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser replaces every field of the user; an omitted role resets to employee.
func (s *UserService) UpdateUser(ctx context.Context, id int64, input models.UserInput) (*models.User, error) {
	user, err := userFromInput(input)
	if err != nil {
		return nil, err
	}
	user.ID = id
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.Delete(ctx, id)
}

// ListUserLeaves returns the leave applications filed by an existing user.
func (s *UserService) ListUserLeaves(ctx context.Context, id int64) ([]models.LeaveApplication, error) {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.leaveRepo.List(ctx, models.LeaveFilter{UserID: id})
}

func userFromInput(input models.UserInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, newValidationError("password", MsgPasswordTooLong)
		}
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleEmployee
	}
	return &models.User{
		Email:    input.Email,
		Password: string(hash),
		Name:     input.Name,
		Role:     role,
	}, nil
}
