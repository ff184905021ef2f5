package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"leasedesk/internal/adapters/persistence/models"
	"leasedesk/internal/adapters/persistence/repositories"
	"leasedesk/internal/core/domain"
	"leasedesk/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("username already exists")
	ErrCannotDeleteSelf    = errors.New("cannot delete your own account")
	ErrCannotDeletePrimary = errors.New("cannot delete the primary admin account")
)

// UserService handles user management business logic
type UserService struct {
	userRepo     repositories.UserRepository
	activityRepo repositories.ActivityLogRepository
	primaryAdmin string
}

// NewUserService creates a new user service. primaryAdmin is the
// username of the protected seeded account.
func NewUserService(
	userRepo repositories.UserRepository,
	activityRepo repositories.ActivityLogRepository,
	primaryAdmin string,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		primaryAdmin: primaryAdmin,
	}
}

// CreateUserInput represents create user input
type CreateUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users []*models.UserResponse `json:"users"`
	Total int64                  `json:"total"`
}

// Create creates a new user
func (s *UserService) Create(ctx context.Context, input *CreateUserInput, actor, sourceAddr string) (*models.UserResponse, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if !password.ValidatePassword(input.Password) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrWeakPassword)
	}
	if input.Role == "" {
		input.Role = string(domain.RoleUser)
	}
	if !domain.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: invalid role %q", domain.ErrInvalidInput, input.Role)
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: input.Username,
		Password: hashed,
		Role:     input.Role,
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	s.logActivity(ctx, actor, "User created", fmt.Sprintf("Created user %s (%s)", user.Username, user.Role), sourceAddr)
	log.Printf("✅ User created: %s", user.Username)

	return user.ToResponse(), nil
}

// List lists users; stored credentials are never included
func (s *UserService) List(ctx context.Context, offset, limit int) (*ListUsersOutput, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}

	return &ListUsersOutput{Users: responses, Total: total}, nil
}

// GetByUsername gets a user by username
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// Delete removes a user permanently. The caller's own record and the
// primary admin record are protected.
func (s *UserService) Delete(ctx context.Context, id, actorID uint, actor, sourceAddr string) error {
	if id == actorID {
		return ErrCannotDeleteSelf
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Username == s.primaryAdmin {
		return ErrCannotDeletePrimary
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logActivity(ctx, actor, "User deleted", fmt.Sprintf("Deleted user %s", user.Username), sourceAddr)
	return nil
}

func (s *UserService) logActivity(ctx context.Context, username, action, details, sourceAddr string) {
	entry := &models.ActivityLog{
		Username:      username,
		Action:        action,
		Details:       details,
		SourceAddress: sourceAddr,
	}
	if err := s.activityRepo.Append(ctx, entry); err != nil {
		log.Printf("⚠️ Activity log write failed (%s): %v", action, err)
	}
}
