package routes

import (
	"leasedesk/internal/adapters/http/handlers"
	"leasedesk/internal/adapters/http/middleware"
	"leasedesk/internal/adapters/persistence/repositories"
	"leasedesk/internal/config"
	"leasedesk/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	agreementRepo := repositories.NewAgreementRepository(db)
	activityRepo := repositories.NewActivityLogRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, activityRepo, settingsRepo, cfg)
	userService := services.NewUserService(userRepo, activityRepo, cfg.Seed.AdminUsername)
	agreementService := services.NewAgreementService(agreementRepo, activityRepo)
	settingsService := services.NewSettingsService(settingsRepo, activityRepo)
	backupService := services.NewBackupService(db, activityRepo, cfg.Seed.AdminUsername)
	reportService := services.NewReportService(db)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	agreementHandler := handlers.NewAgreementHandler(agreementService, settingsService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	activityHandler := handlers.NewActivityHandler(activityRepo)
	reportHandler := handlers.NewReportHandler(reportService)
	backupHandler := handlers.NewBackupHandler(backupService)

	// Public routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Post("/auth/login", middleware.AuthRateLimiter(), authHandler.Login)

	// Protected routes
	auth := middleware.AuthMiddleware(cfg)

	app.Put("/auth/change-password", auth, authHandler.ChangePassword)

	agreements := app.Group("/agreements", auth)
	agreements.Get("/", agreementHandler.List)
	agreements.Get("/:id", agreementHandler.Get)
	agreements.Post("/", middleware.StaffOnly(), agreementHandler.Create)
	agreements.Put("/:id", middleware.StaffOnly(), agreementHandler.Update)
	agreements.Delete("/:id", middleware.ManagerOrAdmin(), agreementHandler.Delete)

	users := app.Group("/users", auth, middleware.AdminOnly())
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/:id", userHandler.Delete)

	settings := app.Group("/settings", auth)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", middleware.AdminOnly(), settingsHandler.Update)

	app.Get("/activity-logs", auth, middleware.AdminOnly(), activityHandler.List)

	reports := app.Group("/reports", auth)
	reports.Get("/", reportHandler.List)
	reports.Get("/profit", reportHandler.Profit)

	backup := app.Group("/backup", auth, middleware.AdminOnly())
	backup.Get("/", backupHandler.Export)
	backup.Post("/", backupHandler.Restore)
}
