package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"leasedesk/internal/adapters/persistence/models"
	"leasedesk/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Backup errors
var (
	ErrSnapshotEmpty    = errors.New("snapshot is empty")
	ErrSnapshotConflict = errors.New("snapshot contains conflicting records")
)

// RedactedCredential marks a credential that was stripped on export.
// Restore skips such entries instead of inserting a guessable value.
const RedactedCredential = "REDACTED"

// Snapshot is the export format: the full agreement collection plus a
// user list with credentials redacted.
type Snapshot struct {
	ID         string              `json:"id"`
	CreatedAt  time.Time           `json:"created_at"`
	Agreements []*models.Agreement `json:"agreements"`
	Users      []*SnapshotUser     `json:"users"`
}

// SnapshotUser is a user entry inside a snapshot. Credential is
// RedactedCredential on every export; a hand-authored snapshot may
// carry a real bcrypt stored form instead.
type SnapshotUser struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
	Credential string `json:"credential"`
}

// RestoreResult reports how many records a restore applied
type RestoreResult struct {
	AgreementsRestored int `json:"agreements_restored"`
	UsersRestored      int `json:"users_restored"`
	UsersSkipped       int `json:"users_skipped"`
}

// BackupService handles snapshot export and transactional restore. It
// holds the database handle directly because restore must span both
// collections in one transaction.
type BackupService struct {
	db           *gorm.DB
	activityRepo repositories.ActivityLogRepository
	primaryAdmin string
}

// NewBackupService creates a new backup service
func NewBackupService(db *gorm.DB, activityRepo repositories.ActivityLogRepository, primaryAdmin string) *BackupService {
	return &BackupService{
		db:           db,
		activityRepo: activityRepo,
		primaryAdmin: primaryAdmin,
	}
}

// Export builds a snapshot of all agreements and all users with their
// credentials redacted
func (s *BackupService) Export(ctx context.Context, actor, sourceAddr string) (*Snapshot, error) {
	var agreements []*models.Agreement
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&agreements).Error; err != nil {
		return nil, err
	}

	var users []*models.User
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		ID:         uuid.New().String(),
		CreatedAt:  time.Now(),
		Agreements: agreements,
		Users:      make([]*SnapshotUser, len(users)),
	}
	for i, user := range users {
		snapshot.Users[i] = &SnapshotUser{
			Username:   user.Username,
			Role:       user.Role,
			IsActive:   user.IsActive,
			Credential: RedactedCredential,
		}
	}

	s.logActivity(ctx, actor, "Backup exported", fmt.Sprintf("Snapshot %s (%d agreements, %d users)", snapshot.ID, len(agreements), len(users)), sourceAddr)
	return snapshot, nil
}

// Restore applies a snapshot in a single transaction. Agreements are
// clear-then-insert: the existing collection is replaced and any
// conflict inside the snapshot rolls everything back. Users are
// merge-skip: entries with redacted credentials, existing usernames
// and the primary admin account are skipped, never overwritten.
func (s *BackupService) Restore(ctx context.Context, snapshot *Snapshot, actor, sourceAddr string) (*RestoreResult, error) {
	if snapshot == nil || (len(snapshot.Agreements) == 0 && len(snapshot.Users) == 0) {
		return nil, ErrSnapshotEmpty
	}

	result := &RestoreResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Agreement{}).Error; err != nil {
			return err
		}

		for _, src := range snapshot.Agreements {
			agreement := *src
			agreement.ID = 0
			// Snapshot-supplied derived values are untrusted
			agreement.Recompute()
			if err := tx.Create(&agreement).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("%w: token number %s", ErrSnapshotConflict, agreement.TokenNumber)
				}
				return err
			}
			result.AgreementsRestored++
		}

		for _, src := range snapshot.Users {
			if src.Credential == "" || src.Credential == RedactedCredential || src.Username == s.primaryAdmin {
				result.UsersSkipped++
				continue
			}

			var count int64
			if err := tx.Model(&models.User{}).Where("username = ?", src.Username).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				result.UsersSkipped++
				continue
			}

			user := &models.User{
				Username: src.Username,
				Password: src.Credential,
				Role:     src.Role,
				IsActive: src.IsActive,
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			result.UsersRestored++
		}

		return nil
	})
	if err != nil {
		log.Printf("❌ Restore rolled back: %v", err)
		return nil, err
	}

	s.logActivity(ctx, actor, "Backup restored",
		fmt.Sprintf("Snapshot %s restored (%d agreements, %d users, %d skipped)",
			snapshot.ID, result.AgreementsRestored, result.UsersRestored, result.UsersSkipped),
		sourceAddr)
	log.Printf("✅ Snapshot restored: %d agreements, %d users", result.AgreementsRestored, result.UsersRestored)

	return result, nil
}

func (s *BackupService) logActivity(ctx context.Context, username, action, details, sourceAddr string) {
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
