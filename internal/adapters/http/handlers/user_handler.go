package handlers

import (
	"errors"

	"leasedesk/internal/core/domain"
	"leasedesk/internal/core/services"
	"leasedesk/internal/pkg/pagination"
	"leasedesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints (ADMIN only)
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /users
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c, 0)

	out, err := h.userService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return c.JSON(pagination.NewResponse(out.Users, params, out.Total))
}

// Create handles POST /users
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "User data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req services.CreateUserInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor, _ := c.Locals("username").(string)

	user, err := h.userService.Create(c.Context(), &req, actor, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUserAlreadyExists):
			return response.Conflict(c, "Username already exists")
		default:
			return response.InternalServerError(c, "Failed to create user")
		}
	}

	return response.Created(c, "User created successfully", user)
}

// Delete handles DELETE /users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	actorID, _ := c.Locals("userID").(uint)
	actor, _ := c.Locals("username").(string)

	if err := h.userService.Delete(c.Context(), uint(id), actorID, actor, c.IP()); err != nil {
		switch {
		case errors.Is(err, services.ErrCannotDeleteSelf):
			return response.Forbidden(c, "Cannot delete your own account")
		case errors.Is(err, services.ErrCannotDeletePrimary):
			return response.Forbidden(c, "Cannot delete the primary admin account")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to delete user")
		}
	}

	return response.Success(c, "User deleted successfully", nil)
}
