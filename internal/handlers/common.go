package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"freelancehub/internal/models"
)

// principalID resolves the acting user set by the JWT middleware.
func principalID(c *fiber.Ctx) (uuid.UUID, bool) {
	raw, _ := c.Locals("userId").(string)
	id, err := uuid.Parse(raw)
	return id, err == nil
}

// publicUser is the user view returned by auth endpoints: never the password,
// never internal bookkeeping.
func publicUser(u *models.User) fiber.Map {
	return fiber.Map{
		"id":       u.ID,
		"name":     u.Name,
		"email":    u.Email,
		"userType": u.Role,
	}
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}
