package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"freelancehub/internal/models"
	"freelancehub/internal/utils"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	Expires   int
	Log       zerolog.Logger
}

type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"` // client / freelancer
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	if name == "" || email == "" || password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Name, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid email format")
	}
	if len(password) < 6 {
		return errorJSON(c, fiber.StatusBadRequest, "Password must be at least 6 characters")
	}
	role, ok := models.ParseRole(req.UserType)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "userType must be client or freelancer")
	}

	var existing models.User
	err := h.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return errorJSON(c, fiber.StatusBadRequest, "User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.Log.Error().Err(err).Msg("register: email lookup")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		h.Log.Error().Err(err).Msg("register: hash password")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	u := models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		// unique index catches the race the lookup above cannot
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errorJSON(c, fiber.StatusBadRequest, "User already exists")
		}
		h.Log.Error().Err(err).Msg("register: create user")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		h.Log.Error().Err(err).Msg("register: sign token")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  publicUser(&u),
	})
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Email and password are required")
	}

	var u models.User
	err := h.DB.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// identical to the wrong-password answer so accounts cannot be enumerated
		return errorJSON(c, fiber.StatusBadRequest, "Invalid credentials")
	}
	if err != nil {
		h.Log.Error().Err(err).Msg("login: email lookup")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	if !utils.CheckPassword(u.Password, password) {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid credentials")
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		h.Log.Error().Err(err).Msg("login: sign token")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  publicUser(&u),
	})
}
