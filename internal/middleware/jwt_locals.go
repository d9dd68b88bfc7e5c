package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"freelancehub/internal/utils"
)

// AttachJWTLocals flattens the verified claims into userId/role locals so
// handlers never touch the token themselves.
func AttachJWTLocals() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*utils.Claims)
		if !ok || claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token",
			})
		}

		uid := strings.TrimSpace(claims.UserID)
		role := strings.ToLower(strings.TrimSpace(claims.Role))
		if uid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token",
			})
		}

		c.Locals("userId", uid)
		c.Locals("role", role)

		return c.Next()
	}
}
