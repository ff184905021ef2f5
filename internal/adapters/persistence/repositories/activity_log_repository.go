package repositories

import (
	"context"

	"leasedesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// activityLogRepository implements ActivityLogRepository interface
type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

// Append inserts an entry. There is deliberately no update or delete:
// the log is append-only.
func (r *activityLogRepository) Append(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List lists entries newest-first with pagination
func (r *activityLogRepository) List(ctx context.Context, offset, limit int) ([]*models.ActivityLog, int64, error) {
	var entries []*models.ActivityLog
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
