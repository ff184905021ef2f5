package middleware

import (
	"strings"

	"leasedesk/internal/config"
	"leasedesk/internal/core/domain"
	"leasedesk/internal/pkg/jwt"
	"leasedesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware. Every protected
// route rejects with 401 unless a valid, unexpired session token is
// presented.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sessionToken string

		// 1. Try to get token from cookie first
		sessionToken = c.Cookies("session_token")

		// 2. If not in cookie, try Authorization header
		if sessionToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				sessionToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if sessionToken == "" {
			return response.Unauthorized(c, "Session token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateSessionToken(sessionToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Session token expired")
			}
			return response.Unauthorized(c, "Invalid session token")
		}

		// 5. Set user info in context
		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(string(domain.RoleAdmin))
}

// ManagerOrAdmin middleware allows MANAGER or ADMIN roles
func ManagerOrAdmin() fiber.Handler {
	return RoleMiddleware(string(domain.RoleManager), string(domain.RoleAdmin))
}

// StaffOnly middleware allows AGENT, MANAGER or ADMIN roles
func StaffOnly() fiber.Handler {
	return RoleMiddleware(string(domain.RoleAgent), string(domain.RoleManager), string(domain.RoleAdmin))
}
