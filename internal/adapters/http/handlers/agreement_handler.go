package handlers

import (
	"errors"

	"leasedesk/internal/core/domain"
	"leasedesk/internal/core/services"
	"leasedesk/internal/pkg/pagination"
	"leasedesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AgreementHandler handles agreement CRUD endpoints
type AgreementHandler struct {
	agreementService *services.AgreementService
	settingsService  *services.SettingsService
}

// NewAgreementHandler creates a new agreement handler
func NewAgreementHandler(
	agreementService *services.AgreementService,
	settingsService *services.SettingsService,
) *AgreementHandler {
	return &AgreementHandler{
		agreementService: agreementService,
		settingsService:  settingsService,
	}
}

// List handles GET /agreements
// @Summary List agreements
// @Tags Agreements
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Response
// @Router /agreements [get]
func (h *AgreementHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c, h.defaultPageSize(c))

	out, err := h.agreementService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list agreements")
	}

	return c.JSON(pagination.NewResponse(out.Agreements, params, out.Total))
}

// Get handles GET /agreements/:id
func (h *AgreementHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid agreement id")
	}

	agreement, err := h.agreementService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAgreementNotFound) {
			return response.NotFound(c, "Agreement not found")
		}
		return response.InternalServerError(c, "Failed to get agreement")
	}

	return response.Success(c, "", agreement)
}

// Create handles POST /agreements
// @Summary Create agreement
// @Description Create an agreement; profit figures and payment due are derived server-side
// @Tags Agreements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AgreementInput true "Agreement data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /agreements [post]
func (h *AgreementHandler) Create(c *fiber.Ctx) error {
	var req services.AgreementInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor, _ := c.Locals("username").(string)

	agreement, err := h.agreementService.Create(c.Context(), &req, actor, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrTokenNumberExists):
			return response.Conflict(c, "Token number already exists")
		default:
			return response.InternalServerError(c, "Failed to create agreement")
		}
	}

	return response.Created(c, "Agreement created successfully", agreement)
}

// Update handles PUT /agreements/:id
func (h *AgreementHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid agreement id")
	}

	var req services.AgreementInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor, _ := c.Locals("username").(string)

	agreement, err := h.agreementService.Update(c.Context(), uint(id), &req, actor, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrAgreementNotFound):
			return response.NotFound(c, "Agreement not found")
		case errors.Is(err, services.ErrTokenNumberExists):
			return response.Conflict(c, "Token number already exists")
		default:
			return response.InternalServerError(c, "Failed to update agreement")
		}
	}

	return response.Success(c, "Agreement updated successfully", agreement)
}

// Delete handles DELETE /agreements/:id
func (h *AgreementHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid agreement id")
	}

	actor, _ := c.Locals("username").(string)

	if err := h.agreementService.Delete(c.Context(), uint(id), actor, c.IP()); err != nil {
		if errors.Is(err, services.ErrAgreementNotFound) {
			return response.NotFound(c, "Agreement not found")
		}
		return response.InternalServerError(c, "Failed to delete agreement")
	}

	return response.Success(c, "Agreement deleted successfully", nil)
}

// defaultPageSize reads the configured page size; 0 lets pagination
// fall back to its own default
func (h *AgreementHandler) defaultPageSize(c *fiber.Ctx) int {
	settings, err := h.settingsService.Get(c.Context())
	if err != nil {
		return 0
	}
	return settings.PageSize
}
