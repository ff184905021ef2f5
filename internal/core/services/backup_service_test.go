package services

import (
	"context"
	"errors"
	"testing"

	"leasedesk/internal/adapters/persistence/models"
	"leasedesk/internal/adapters/persistence/repositories"
	"leasedesk/internal/pkg/password"

	"gorm.io/gorm"
)

func newBackupService(db *gorm.DB) *BackupService {
	return NewBackupService(db, repositories.NewActivityLogRepository(db), "admin")
}

func TestExportRedactsCredentials(t *testing.T) {
	db := setupTestDB(t)
	s := newBackupService(db)

	hashed, _ := password.Hash("secret123")
	seedUser(t, db, "admin", hashed, "ADMIN")
	seedUser(t, db, "ravi", hashed, "AGENT")

	svc := newAgreementService(db)
	if _, err := svc.Create(context.Background(), baseInput("RT-100"), "admin", ""); err != nil {
		t.Fatalf("create agreement: %v", err)
	}

	snap, err := s.Export(context.Background(), "admin", "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if snap.ID == "" {
		t.Error("snapshot id empty")
	}
	if len(snap.Agreements) != 1 || len(snap.Users) != 2 {
		t.Fatalf("snapshot shape: %d agreements, %d users", len(snap.Agreements), len(snap.Users))
	}
	for _, u := range snap.Users {
		if u.Credential != RedactedCredential {
			t.Errorf("user %s credential = %q", u.Username, u.Credential)
		}
	}
}

func TestRestoreReplacesAgreements(t *testing.T) {
	db := setupTestDB(t)
	s := newBackupService(db)
	svc := newAgreementService(db)

	for _, token := range []string{"OLD-1", "OLD-2"} {
		if _, err := svc.Create(context.Background(), baseInput(token), "admin", ""); err != nil {
			t.Fatalf("seed %s: %v", token, err)
		}
	}

	snap := &Snapshot{
		Agreements: []*models.Agreement{
			{TokenNumber: "NEW-1", OwnerName: "Meera", Location: "Pune", TotalPayment: 2000, ActualCost: 800},
		},
	}

	result, err := s.Restore(context.Background(), snap, "admin", "")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if result.AgreementsRestored != 1 {
		t.Errorf("restored = %d", result.AgreementsRestored)
	}

	var agreements []*models.Agreement
	if err := db.Find(&agreements).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(agreements) != 1 || agreements[0].TokenNumber != "NEW-1" {
		t.Fatalf("store after restore: %+v", agreements)
	}
	// Derived fields come from the inputs, not the snapshot
	if agreements[0].GrossProfit != 1200 {
		t.Errorf("gross profit = %v", agreements[0].GrossProfit)
	}
}

func TestRestoreConflictLeavesStoreUnchanged(t *testing.T) {
	db := setupTestDB(t)
	s := newBackupService(db)
	svc := newAgreementService(db)

	if _, err := svc.Create(context.Background(), baseInput("KEEP-1"), "admin", ""); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Duplicate token inside the snapshot must abort everything
	snap := &Snapshot{
		Agreements: []*models.Agreement{
			{TokenNumber: "DUP-1", OwnerName: "A", Location: "X"},
			{TokenNumber: "DUP-1", OwnerName: "B", Location: "Y"},
		},
	}

	if _, err := s.Restore(context.Background(), snap, "admin", ""); !errors.Is(err, ErrSnapshotConflict) {
		t.Fatalf("restore err = %v", err)
	}

	var agreements []*models.Agreement
	if err := db.Find(&agreements).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(agreements) != 1 || agreements[0].TokenNumber != "KEEP-1" {
		t.Fatalf("store changed after failed restore: %+v", agreements)
	}
}

func TestRestoreUsersMergeSkip(t *testing.T) {
	db := setupTestDB(t)
	s := newBackupService(db)

	hashed, _ := password.Hash("secret123")
	seedUser(t, db, "admin", hashed, "ADMIN")
	seedUser(t, db, "existing", hashed, "USER")

	imported, _ := password.Hash("imported123")
	snap := &Snapshot{
		Users: []*SnapshotUser{
			{Username: "admin", Role: "ADMIN", IsActive: true, Credential: imported},
			{Username: "existing", Role: "MANAGER", IsActive: true, Credential: imported},
			{Username: "redacted", Role: "USER", IsActive: true, Credential: RedactedCredential},
			{Username: "fresh", Role: "AGENT", IsActive: true, Credential: imported},
		},
	}

	result, err := s.Restore(context.Background(), snap, "admin", "")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if result.UsersRestored != 1 || result.UsersSkipped != 3 {
		t.Errorf("restored=%d skipped=%d", result.UsersRestored, result.UsersSkipped)
	}

	var admin models.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("reload admin: %v", err)
	}
	if admin.Password != hashed {
		t.Error("primary admin credential overwritten by restore")
	}

	var existing models.User
	db.Where("username = ?", "existing").First(&existing)
	if existing.Role != "USER" {
		t.Error("existing user overwritten by restore")
	}

	var count int64
	db.Model(&models.User{}).Where("username = ?", "fresh").Count(&count)
	if count != 1 {
		t.Error("fresh user not restored")
	}
}

func TestRestoreEmptySnapshot(t *testing.T) {
	db := setupTestDB(t)
	s := newBackupService(db)

	if _, err := s.Restore(context.Background(), nil, "admin", ""); !errors.Is(err, ErrSnapshotEmpty) {
		t.Errorf("nil snapshot err = %v", err)
	}
	if _, err := s.Restore(context.Background(), &Snapshot{}, "admin", ""); !errors.Is(err, ErrSnapshotEmpty) {
		t.Errorf("empty snapshot err = %v", err)
	}
}
