package handlers

import (
	"leasedesk/internal/adapters/persistence/repositories"
	"leasedesk/internal/pkg/pagination"
	"leasedesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ActivityHandler handles the read-only activity log endpoint
type ActivityHandler struct {
	activityRepo repositories.ActivityLogRepository
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityRepo repositories.ActivityLogRepository) *ActivityHandler {
	return &ActivityHandler{activityRepo: activityRepo}
}

// List handles GET /activity-logs
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c, 0)

	entries, total, err := h.activityRepo.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list activity logs")
	}

	return c.JSON(pagination.NewResponse(entries, params, total))
}
