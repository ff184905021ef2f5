package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"leasedesk/internal/adapters/persistence/models"
	"leasedesk/internal/adapters/persistence/repositories"
	"leasedesk/internal/core/domain"

	"gorm.io/gorm"
)

// ErrSettingsNotSeeded is returned when the singleton row is missing
var ErrSettingsNotSeeded = errors.New("settings not seeded")

// SettingsService manages the singleton settings row
type SettingsService struct {
	settingsRepo repositories.SettingsRepository
	activityRepo repositories.ActivityLogRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	settingsRepo repositories.SettingsRepository,
	activityRepo repositories.ActivityLogRepository,
) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		activityRepo: activityRepo,
	}
}

// UpdateSettingsInput represents settings update input. Nil fields are
// left unchanged.
type UpdateSettingsInput struct {
	CompanyName         *string `json:"company_name"`
	DefaultCCEmail      *string `json:"default_cc_email"`
	ReminderLeadDays    *int    `json:"reminder_lead_days"`
	DateFormat          *string `json:"date_format"`
	CurrencySymbol      *string `json:"currency_symbol"`
	SessionTimeoutHours *int    `json:"session_timeout_hours"`
	PageSize            *int    `json:"page_size"`
}

// Get returns the settings row
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotSeeded
		}
		return nil, err
	}
	return settings, nil
}

// Update applies the submitted fields in place
func (s *SettingsService) Update(ctx context.Context, input *UpdateSettingsInput, actor, sourceAddr string) (*models.Settings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		settings.CompanyName = *input.CompanyName
	}
	if input.DefaultCCEmail != nil {
		settings.DefaultCCEmail = *input.DefaultCCEmail
	}
	if input.ReminderLeadDays != nil {
		if *input.ReminderLeadDays < 0 {
			return nil, fmt.Errorf("%w: reminder_lead_days must not be negative", domain.ErrInvalidInput)
		}
		settings.ReminderLeadDays = *input.ReminderLeadDays
	}
	if input.DateFormat != nil {
		settings.DateFormat = *input.DateFormat
	}
	if input.CurrencySymbol != nil {
		settings.CurrencySymbol = *input.CurrencySymbol
	}
	if input.SessionTimeoutHours != nil {
		if *input.SessionTimeoutHours < 1 {
			return nil, fmt.Errorf("%w: session_timeout_hours must be positive", domain.ErrInvalidInput)
		}
		settings.SessionTimeoutHours = *input.SessionTimeoutHours
	}
	if input.PageSize != nil {
		if *input.PageSize < 1 {
			return nil, fmt.Errorf("%w: page_size must be positive", domain.ErrInvalidInput)
		}
		settings.PageSize = *input.PageSize
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	entry := &models.ActivityLog{
		Username:      actor,
		Action:        "Settings updated",
		Details:       "System settings updated",
		SourceAddress: sourceAddr,
	}
	if err := s.activityRepo.Append(ctx, entry); err != nil {
		log.Printf("⚠️ Activity log write failed (Settings updated): %v", err)
	}

	return settings, nil
}
