package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"leasedesk/internal/adapters/persistence/models"
	"leasedesk/internal/adapters/persistence/repositories"
	"leasedesk/internal/config"
	"leasedesk/internal/core/domain"
	"leasedesk/internal/pkg/jwt"
	"leasedesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrOldPasswordWrong   = errors.New("current password is incorrect")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo     repositories.UserRepository
	activityRepo repositories.ActivityLogRepository
	settingsRepo repositories.SettingsRepository
	cfg          *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	activityRepo repositories.ActivityLogRepository,
	settingsRepo repositories.SettingsRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		settingsRepo: settingsRepo,
		cfg:          cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// LoginResult represents a successful authentication
type LoginResult struct {
	User      *models.UserResponse `json:"user"`
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// Login authenticates a user and issues a session token. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input *LoginInput, sourceAddr string) (*LoginResult, error) {
	// 1. Find user by username
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password, accepting legacy stored forms once
	ok, legacy := password.VerifyAny(input.Password, user.Password)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	// 4. Upgrade a legacy credential in place before responding, so the
	// next login takes the bcrypt path
	if legacy {
		hashed, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
		log.Printf("🔒 Legacy credential upgraded for user: %s", user.Username)
	}

	// 5. Record last login
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// 6. Issue session token
	hours := s.sessionHours(ctx)
	token, err := jwt.GenerateSessionToken(user.ID, user.Username, user.Role, s.cfg.JWT.Secret, hours)
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, user.Username, "Login", "User logged in", sourceAddr)
	log.Printf("✅ User logged in: %s", user.Username)

	return &LoginResult{
		User:      user.ToResponse(),
		Token:     token,
		ExpiresAt: now.Add(time.Duration(hours) * time.Hour),
	}, nil
}

// ChangePassword replaces the caller's stored credential after
// verifying the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput, sourceAddr string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if ok, _ := password.VerifyAny(input.CurrentPassword, user.Password); !ok {
		return ErrOldPasswordWrong
	}

	if !password.ValidatePassword(input.NewPassword) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrWeakPassword)
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logActivity(ctx, user.Username, "Password changed", "User changed own password", sourceAddr)
	return nil
}

// ValidateSessionToken validates a session token
func (s *AuthService) ValidateSessionToken(token string) (*jwt.Claims, error) {
	return jwt.ValidateSessionToken(token, s.cfg.JWT.Secret)
}

// sessionHours reads the session window from settings, falling back to
// the configured default when the row is unreadable
func (s *AuthService) sessionHours(ctx context.Context) int {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil || settings.SessionTimeoutHours < 1 {
		return s.cfg.JWT.SessionHours
	}
	return settings.SessionTimeoutHours
}

// logActivity appends an audit entry. A sink failure never aborts the
// operation it accompanies.
func (s *AuthService) logActivity(ctx context.Context, username, action, details, sourceAddr string) {
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
