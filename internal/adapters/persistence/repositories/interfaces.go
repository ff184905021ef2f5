package repositories

import (
	"context"
	"time"

	"leasedesk/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// AgreementRepository defines agreement repository interface
type AgreementRepository interface {
	Create(ctx context.Context, agreement *models.Agreement) error
	GetByID(ctx context.Context, id uint) (*models.Agreement, error)
	Update(ctx context.Context, agreement *models.Agreement) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Agreement, int64, error)
	ListAll(ctx context.Context) ([]*models.Agreement, error)
	ExistsByTokenNumber(ctx context.Context, tokenNumber string, excludeID uint) (bool, error)
	DueForReminder(ctx context.Context, from, to time.Time) ([]*models.Agreement, error)
}

// ActivityLogRepository defines the append-only activity log sink
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, offset, limit int) ([]*models.ActivityLog, int64, error)
}

// SettingsRepository defines access to the singleton settings row
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
}
