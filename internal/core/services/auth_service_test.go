package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"leasedesk/internal/adapters/persistence/models"
	"leasedesk/internal/adapters/persistence/repositories"
	"leasedesk/internal/config"
	"leasedesk/internal/pkg/password"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "test-secret", SessionHours: 24},
		Seed:    config.SeedConfig{AdminUsername: "admin"},
	}
}

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewActivityLogRepository(db),
		repositories.NewSettingsRepository(db),
		testConfig(),
	)
}

func seedUser(t *testing.T, db *gorm.DB, username, storedCredential, role string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: storedCredential, Role: role, IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func TestLoginSuccess(t *testing.T) {
	db := setupTestDB(t)
	s := newAuthService(db)

	hashed, _ := password.Hash("secret123")
	seedUser(t, db, "alice", hashed, "USER")

	result, err := s.Login(context.Background(), &LoginInput{Username: "alice", Password: "secret123"}, "127.0.0.1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a session token")
	}
	if result.User.Username != "alice" {
		t.Errorf("username = %s", result.User.Username)
	}
	if result.User.LastLoginAt == nil {
		t.Error("lastLoginAt not recorded")
	}

	claims, err := s.ValidateSessionToken(result.Token)
	if err != nil {
		t.Fatalf("validate issued token: %v", err)
	}
	if claims.Role != "USER" {
		t.Errorf("token role = %s", claims.Role)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	db := setupTestDB(t)
	s := newAuthService(db)

	hashed, _ := password.Hash("right-password")
	seedUser(t, db, "admin", hashed, "ADMIN")

	_, errWrongPassword := s.Login(context.Background(), &LoginInput{Username: "admin", Password: "wrong"}, "")
	_, errUnknownUser := s.Login(context.Background(), &LoginInput{Username: "nouser", Password: "whatever"}, "")

	if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v", errUnknownUser)
	}
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Error("failure shapes must be indistinguishable")
	}
}

func TestLoginInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	s := newAuthService(db)

	hashed, _ := password.Hash("secret123")
	user := seedUser(t, db, "carol", hashed, "USER")
	user.IsActive = false
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := s.Login(context.Background(), &LoginInput{Username: "carol", Password: "secret123"}, ""); !errors.Is(err, ErrUserInactive) {
		t.Errorf("err = %v, want ErrUserInactive", err)
	}
}

func TestLoginMigratesLegacyCredential(t *testing.T) {
	db := setupTestDB(t)
	s := newAuthService(db)

	legacy := base64.StdEncoding.EncodeToString([]byte("secret123"))
	seedUser(t, db, "dave", legacy, "AGENT")

	// First login goes through the legacy path and upgrades in place
	if _, err := s.Login(context.Background(), &LoginInput{Username: "dave", Password: "secret123"}, ""); err != nil {
		t.Fatalf("legacy login: %v", err)
	}

	var stored models.User
	if err := db.Where("username = ?", "dave").First(&stored).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Password == legacy {
		t.Fatal("credential was not upgraded")
	}
	if !password.IsHashed(stored.Password) {
		t.Fatalf("upgraded credential is not a bcrypt hash: %q", stored.Password)
	}

	// Second login must take the current-scheme path and leave the
	// stored form unchanged
	if _, err := s.Login(context.Background(), &LoginInput{Username: "dave", Password: "secret123"}, ""); err != nil {
		t.Fatalf("post-migration login: %v", err)
	}
	var after models.User
	db.Where("username = ?", "dave").First(&after)
	if after.Password != stored.Password {
		t.Error("stored form changed again after migration")
	}

	if _, err := s.Login(context.Background(), &LoginInput{Username: "dave", Password: "wrong"}, ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password after migration: %v", err)
	}
}

func TestLoginMigratesPlaintextCredential(t *testing.T) {
	db := setupTestDB(t)
	s := newAuthService(db)

	seedUser(t, db, "erin", "plain-pass-1", "USER")

	if _, err := s.Login(context.Background(), &LoginInput{Username: "erin", Password: "plain-pass-1"}, ""); err != nil {
		t.Fatalf("legacy login: %v", err)
	}

	var stored models.User
	db.Where("username = ?", "erin").First(&stored)
	if !password.IsHashed(stored.Password) {
		t.Error("plaintext credential not upgraded")
	}
}

func TestLoginWritesActivityEntry(t *testing.T) {
	db := setupTestDB(t)
	s := newAuthService(db)

	hashed, _ := password.Hash("secret123")
	seedUser(t, db, "frank", hashed, "USER")

	if _, err := s.Login(context.Background(), &LoginInput{Username: "frank", Password: "secret123"}, "10.1.2.3"); err != nil {
		t.Fatalf("login: %v", err)
	}

	var entry models.ActivityLog
	if err := db.Where("username = ? AND action = ?", "frank", "Login").First(&entry).Error; err != nil {
		t.Fatalf("activity entry missing: %v", err)
	}
	if entry.SourceAddress != "10.1.2.3" {
		t.Errorf("source address = %s", entry.SourceAddress)
	}
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	s := newAuthService(db)

	hashed, _ := password.Hash("old-password")
	user := seedUser(t, db, "gina", hashed, "USER")

	if err := s.ChangePassword(context.Background(), user.ID, &ChangePasswordInput{CurrentPassword: "nope", NewPassword: "new-password"}, ""); !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("wrong current password err = %v", err)
	}

	if err := s.ChangePassword(context.Background(), user.ID, &ChangePasswordInput{CurrentPassword: "old-password", NewPassword: "short"}, ""); err == nil {
		t.Error("weak new password accepted")
	}

	if err := s.ChangePassword(context.Background(), user.ID, &ChangePasswordInput{CurrentPassword: "old-password", NewPassword: "new-password"}, ""); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := s.Login(context.Background(), &LoginInput{Username: "gina", Password: "new-password"}, ""); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := s.Login(context.Background(), &LoginInput{Username: "gina", Password: "old-password"}, ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("login with old password: %v", err)
	}
}
