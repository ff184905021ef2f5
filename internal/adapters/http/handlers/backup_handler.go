package handlers

import (
	"errors"

	"leasedesk/internal/core/services"
	"leasedesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BackupHandler handles snapshot export and restore (ADMIN only)
type BackupHandler struct {
	backupService *services.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *services.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Export handles GET /backup
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	actor, _ := c.Locals("username").(string)

	snapshot, err := h.backupService.Export(c.Context(), actor, c.IP())
	if err != nil {
		return response.InternalServerError(c, "Failed to export backup")
	}

	return response.Success(c, "", snapshot)
}

// Restore handles POST /backup
// @Summary Restore snapshot
// @Description All-or-nothing restore; on any failure nothing is applied
// @Tags Backup
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.Snapshot true "Snapshot"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /backup [post]
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	var snapshot services.Snapshot
	if err := c.BodyParser(&snapshot); err != nil {
		return response.BadRequest(c, "Invalid snapshot body")
	}

	actor, _ := c.Locals("username").(string)

	result, err := h.backupService.Restore(c.Context(), &snapshot, actor, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSnapshotEmpty):
			return response.BadRequest(c, "Snapshot is empty")
		case errors.Is(err, services.ErrSnapshotConflict):
			return response.Conflict(c, "Snapshot contains conflicting records; nothing was restored")
		default:
			return response.InternalServerError(c, "Restore failed; nothing was applied")
		}
	}

	return response.Success(c, "Backup restored successfully", result)
}
