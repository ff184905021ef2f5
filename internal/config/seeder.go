package config

import (
	"log"

	"leasedesk/internal/adapters/persistence/models"
	"leasedesk/internal/core/domain"
	"leasedesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles first-run database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedSettings(); err != nil {
		return err
	}
	if err := s.seedAdminUser(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedSettings creates the singleton settings row if it does not exist
func (s *Seeder) seedSettings() error {
	var count int64
	if err := s.db.Model(&models.Settings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := &models.Settings{
		CompanyName:         s.cfg.Seed.CompanyName,
		DefaultCCEmail:      s.cfg.Seed.DefaultCCEmail,
		ReminderLeadDays:    7,
		DateFormat:          "2006-01-02",
		CurrencySymbol:      "₹",
		SessionTimeoutHours: s.cfg.JWT.SessionHours,
		PageSize:            20,
	}

	if err := s.db.Create(settings).Error; err != nil {
		return err
	}

	log.Println("✅ Settings row created")
	return nil
}

// seedAdminUser seeds the primary admin account. The initial password
// comes from SEED_ADMIN_PASSWORD and must be changed after first login.
func (s *Seeder) seedAdminUser() error {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("username = ?", s.cfg.Seed.AdminUsername).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash(s.cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: s.cfg.Seed.AdminUsername,
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}
