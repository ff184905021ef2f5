package repositories

import (
	"context"
	"time"

	"leasedesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// agreementRepository implements AgreementRepository interface
type agreementRepository struct {
	db *gorm.DB
}

// NewAgreementRepository creates a new agreement repository
func NewAgreementRepository(db *gorm.DB) AgreementRepository {
	return &agreementRepository{db: db}
}

// Create creates a new agreement. Token-number uniqueness is enforced
// by the unique index, not by a prior read.
func (r *agreementRepository) Create(ctx context.Context, agreement *models.Agreement) error {
	return r.db.WithContext(ctx).Create(agreement).Error
}

// GetByID gets an agreement by ID
func (r *agreementRepository) GetByID(ctx context.Context, id uint) (*models.Agreement, error) {
	var agreement models.Agreement
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&agreement).Error
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}

// Update updates an agreement, writing every column so recomputed
// derived fields always overwrite what is stored.
func (r *agreementRepository) Update(ctx context.Context, agreement *models.Agreement) error {
	return r.db.WithContext(ctx).Save(agreement).Error
}

// Delete removes an agreement permanently
func (r *agreementRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Agreement{}, id).Error
}

// List lists agreements newest-first with pagination
func (r *agreementRepository) List(ctx context.Context, offset, limit int) ([]*models.Agreement, int64, error) {
	var agreements []*models.Agreement
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Agreement{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&agreements).Error; err != nil {
		return nil, 0, err
	}

	return agreements, total, nil
}

// ListAll returns the full collection, for snapshot export
func (r *agreementRepository) ListAll(ctx context.Context) ([]*models.Agreement, error) {
	var agreements []*models.Agreement
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&agreements).Error
	if err != nil {
		return nil, err
	}
	return agreements, nil
}

// ExistsByTokenNumber checks token-number uniqueness, excluding the
// record's own id on update
func (r *agreementRepository) ExistsByTokenNumber(ctx context.Context, tokenNumber string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Agreement{}).Where("token_number = ?", tokenNumber)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// DueForReminder returns agreements whose reminder date falls in the
// inclusive [from, to] window
func (r *agreementRepository) DueForReminder(ctx context.Context, from, to time.Time) ([]*models.Agreement, error) {
	var agreements []*models.Agreement
	err := r.db.WithContext(ctx).
		Where("reminder_date IS NOT NULL AND reminder_date >= ? AND reminder_date <= ?", from, to).
		Order("reminder_date ASC").
		Find(&agreements).Error
	if err != nil {
		return nil, err
	}
	return agreements, nil
}
