package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"freelancehub/internal/models"
)

type UserHandler struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewUserHandler(db *gorm.DB, log zerolog.Logger) *UserHandler {
	return &UserHandler{DB: db, Log: log}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	uid, ok := principalID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid token")
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "User not found")
		}
		h.Log.Error().Err(err).Msg("get profile")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(u)
}

type UpdateProfileReq struct {
	Name    string          `json:"name"`
	Profile *models.Profile `json:"profile"`
}

// UpdateProfile lets the owner change name and the profile block. Email, role
// and rating are never touched here.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	uid, ok := principalID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid token")
	}

	var req UpdateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "User not found")
		}
		h.Log.Error().Err(err).Msg("update profile: load user")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		u.Name = name
	}
	if req.Profile != nil {
		u.Profile = *req.Profile
	}

	if err := h.DB.Save(&u).Error; err != nil {
		h.Log.Error().Err(err).Msg("update profile: save")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(u)
}

// Freelancers is the public directory, best-rated first.
func (h *UserHandler) Freelancers(c *fiber.Ctx) error {
	var users []models.User
	if err := h.DB.
		Where("role = ?", models.RoleFreelancer).
		Order("rating_average DESC").
		Find(&users).Error; err != nil {
		h.Log.Error().Err(err).Msg("list freelancers")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(users)
}
