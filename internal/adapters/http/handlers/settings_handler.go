package handlers

import (
	"errors"

	"leasedesk/internal/core/domain"
	"leasedesk/internal/core/services"
	"leasedesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles the settings singleton endpoints
type SettingsHandler struct {
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles GET /settings
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settingsService.Get(c.Context())
	if err != nil {
		if errors.Is(err, services.ErrSettingsNotSeeded) {
			return response.NotFound(c, "Settings not found")
		}
		return response.InternalServerError(c, "Failed to get settings")
	}

	return response.Success(c, "", settings)
}

// Update handles PUT /settings
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req services.UpdateSettingsInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor, _ := c.Locals("username").(string)

	settings, err := h.settingsService.Update(c.Context(), &req, actor, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrSettingsNotSeeded):
			return response.NotFound(c, "Settings not found")
		default:
			return response.InternalServerError(c, "Failed to update settings")
		}
	}

	return response.Success(c, "Settings updated successfully", settings)
}
