package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"freelancehub/internal/models"
)

type MessageHandler struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewMessageHandler(db *gorm.DB, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{DB: db, Log: log}
}

// List returns every message the principal sent or received, newest first.
func (h *MessageHandler) List(c *fiber.Ctx) error {
	uid, ok := principalID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid token")
	}

	var messages []models.Message
	if err := h.DB.
		Where("sender_id = ? OR recipient_id = ?", uid, uid).
		Preload("Sender", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("Recipient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		h.Log.Error().Err(err).Msg("list messages")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(messages)
}

type SendMessageReq struct {
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	uid, ok := principalID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid token")
	}

	var req SendMessageReq
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Content is required")
	}
	recipientID, err := uuid.Parse(req.Recipient)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid recipient ID")
	}

	var recipient models.User
	if err := h.DB.First(&recipient, "id = ?", recipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Recipient not found")
		}
		h.Log.Error().Err(err).Msg("send message: load recipient")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	msg := models.Message{
		SenderID:    uid,
		RecipientID: recipientID,
		Content:     content,
	}
	if err := h.DB.Create(&msg).Error; err != nil {
		h.Log.Error().Err(err).Msg("send message: insert")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	h.DB.
		Preload("Sender", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("Recipient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		First(&msg, "id = ?", msg.ID)

	return c.Status(fiber.StatusCreated).JSON(msg)
}

// MarkRead flips the read flag. Scoped to the recipient, so a message sent by
// the caller (or someone else's) is reported as not found.
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	uid, ok := principalID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid token")
	}
	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid message ID")
	}

	var msg models.Message
	if err := h.DB.First(&msg, "id = ? AND recipient_id = ?", messageID, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Message not found")
		}
		h.Log.Error().Err(err).Msg("mark read: load")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	if !msg.IsRead {
		now := time.Now()
		msg.IsRead = true
		msg.ReadAt = &now
		if err := h.DB.Save(&msg).Error; err != nil {
			h.Log.Error().Err(err).Msg("mark read: save")
			return errorJSON(c, fiber.StatusInternalServerError, "Server error")
		}
	}

	return c.JSON(msg)
}
