package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"freelancehub/internal/utils"
)

// JWTFromHeader reads `Authorization: Bearer <token>` and stores the verified
// claims for the rest of the chain. A missing header and a bad token are
// reported with distinct messages, matching the public API contract.
func JWTFromHeader(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Access denied",
			})
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token",
			})
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
