package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"leasedesk/internal/adapters/persistence/models"
	"leasedesk/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// reminderActor is the username recorded for scheduler-driven entries
const reminderActor = "system"

// ReminderService scans for agreements whose reminder date falls
// within the configured lead window and records them in the activity
// log, once per day.
type ReminderService struct {
	agreementRepo repositories.AgreementRepository
	settingsRepo  repositories.SettingsRepository
	activityRepo  repositories.ActivityLogRepository
	cron          *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(
	agreementRepo repositories.AgreementRepository,
	settingsRepo repositories.SettingsRepository,
	activityRepo repositories.ActivityLogRepository,
) *ReminderService {
	return &ReminderService{
		agreementRepo: agreementRepo,
		settingsRepo:  settingsRepo,
		activityRepo:  activityRepo,
		cron:          cron.New(),
	}
}

// Start schedules the daily scan (08:30)
func (s *ReminderService) Start() {
	if _, err := s.cron.AddFunc("30 8 * * *", s.RunScan); err != nil {
		log.Printf("❌ Failed to schedule reminder scan: %v", err)
		return
	}
	s.cron.Start()
	log.Println("🚀 ReminderService started (daily at 08:30)")
}

// Stop stops the scheduler and waits for a running scan to finish
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 ReminderService stopped")
}

// RunScan performs one reminder sweep. Exported so an operator can
// trigger it outside the schedule.
func (s *ReminderService) RunScan() {
	ctx := context.Background()

	leadDays := 7
	if settings, err := s.settingsRepo.Get(ctx); err == nil && settings.ReminderLeadDays > 0 {
		leadDays = settings.ReminderLeadDays
	}

	today := time.Now().Truncate(24 * time.Hour)
	until := today.AddDate(0, 0, leadDays)

	agreements, err := s.agreementRepo.DueForReminder(ctx, today, until)
	if err != nil {
		log.Printf("❌ Reminder scan query error: %v", err)
		return
	}

	for _, agreement := range agreements {
		entry := &models.ActivityLog{
			Username: reminderActor,
			Action:   "Reminder due",
			Details: fmt.Sprintf("Agreement %s (%s) reminder date %s",
				agreement.TokenNumber, agreement.OwnerName,
				agreement.ReminderDate.Format(DateLayout)),
		}
		if err := s.activityRepo.Append(ctx, entry); err != nil {
			log.Printf("⚠️ Reminder log write failed for %s: %v", agreement.TokenNumber, err)
		}
	}

	if len(agreements) > 0 {
		log.Printf("🔔 Reminder scan: %d agreement(s) due within %d days", len(agreements), leadDays)
	}
}
