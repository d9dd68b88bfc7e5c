package handlers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"freelancehub/internal/models"
)

type JobHandler struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewJobHandler(db *gorm.DB, log zerolog.Logger) *JobHandler {
	return &JobHandler{DB: db, Log: log}
}

type BudgetReq struct {
	Type string  `json:"type"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

type CreateJobReq struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Skills      []string  `json:"skills"`
	Budget      BudgetReq `json:"budget"`
	Deadline    string    `json:"deadline"` // 2006-01-02, optional
}

func skillsJSON(skills []string) datatypes.JSON {
	if len(skills) == 0 {
		return datatypes.JSON("[]")
	}
	b, _ := json.Marshal(skills)
	return datatypes.JSON(b)
}

// List is the public job board: open jobs only, optional category equality,
// skills any-of and case-insensitive free-text match, newest first.
func (h *JobHandler) List(c *fiber.Ctx) error {
	category := c.Query("category")
	skills := c.Query("skills")
	search := c.Query("search")

	q := h.DB.Model(&models.Job{}).Where("status = ?", models.JobStatusOpen)

	if category != "" {
		q = q.Where("category = ?", category)
	}
	if skills != "" {
		// skills is stored as a JSON array; match any requested tag by its
		// quoted form inside the serialized column
		var skillQ *gorm.DB
		for _, s := range strings.Split(skills, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			pat := `%"` + s + `"%`
			if skillQ == nil {
				skillQ = h.DB.Where("skills LIKE ?", pat)
			} else {
				skillQ = skillQ.Or("skills LIKE ?", pat)
			}
		}
		if skillQ != nil {
			q = q.Where(skillQ)
		}
	}
	if search != "" {
		pat := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pat, pat)
	}

	var jobs []models.Job
	if err := q.
		Preload("Client", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("Proposals", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		h.Log.Error().Err(err).Msg("list jobs")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(fiber.Map{"jobs": jobs})
}

// GetByID is the detail view: client profile and proposals with their
// freelancers expanded.
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID")
	}

	var job models.Job
	if err := h.DB.
		Preload("Client").
		Preload("Proposals", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Proposals.Freelancer").
		First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Job not found")
		}
		h.Log.Error().Err(err).Msg("get job")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(job)
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	uid, ok := principalID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid token")
	}

	var req CreateJobReq
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	category := strings.TrimSpace(req.Category)
	if title == "" || description == "" || category == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Title, description and category are required")
	}
	budgetType, ok := models.ParseBudgetType(req.Budget.Type)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Budget type must be fixed or hourly")
	}

	var deadline *time.Time
	if req.Deadline != "" {
		d, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid deadline")
		}
		deadline = &d
	}

	job := models.Job{
		Title:       title,
		Description: description,
		Category:    category,
		Skills:      skillsJSON(req.Skills),
		Budget: models.Budget{
			Type: budgetType,
			Min:  req.Budget.Min,
			Max:  req.Budget.Max,
		},
		Deadline: deadline,
		ClientID: uid, // owner comes from the principal, never the body
		Status:   models.JobStatusOpen,
	}
	if err := h.DB.Create(&job).Error; err != nil {
		h.Log.Error().Err(err).Msg("create job")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	h.DB.Preload("Client", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	}).First(&job, "id = ?", job.ID)

	return c.Status(fiber.StatusCreated).JSON(job)
}

type UpdateJobReq struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Skills      []string   `json:"skills"`
	Budget      *BudgetReq `json:"budget"`
	Deadline    string     `json:"deadline"`
	Status      string     `json:"status"`
}

// Update edits an owned job. The owner scope is part of the query, so a job
// that exists but belongs to someone else looks exactly like a missing one.
func (h *JobHandler) Update(c *fiber.Ctx) error {
	uid, ok := principalID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid token")
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID")
	}

	var req UpdateJobReq
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ? AND client_id = ?", jobID, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Job not found")
		}
		h.Log.Error().Err(err).Msg("update job: load")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	if t := strings.TrimSpace(req.Title); t != "" {
		job.Title = t
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		job.Description = d
	}
	if cat := strings.TrimSpace(req.Category); cat != "" {
		job.Category = cat
	}
	if req.Skills != nil {
		job.Skills = skillsJSON(req.Skills)
	}
	if req.Budget != nil {
		budgetType, ok := models.ParseBudgetType(req.Budget.Type)
		if !ok {
			return errorJSON(c, fiber.StatusBadRequest, "Budget type must be fixed or hourly")
		}
		job.Budget = models.Budget{Type: budgetType, Min: req.Budget.Min, Max: req.Budget.Max}
	}
	if req.Deadline != "" {
		d, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid deadline")
		}
		job.Deadline = &d
	}
	if req.Status != "" {
		next, ok := models.ParseJobStatus(req.Status)
		if !ok {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid status")
		}
		if next != job.Status {
			if !job.Status.CanTransition(next) {
				return errorJSON(c, fiber.StatusBadRequest, "Invalid status transition")
			}
			job.Status = next
		}
	}

	if err := h.DB.Save(&job).Error; err != nil {
		h.Log.Error().Err(err).Msg("update job: save")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(job)
}

// Delete removes an owned job, with the same not-owned == not-found masking
// as Update.
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	uid, ok := principalID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid token")
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID")
	}

	res := h.DB.Where("id = ? AND client_id = ?", jobID, uid).Delete(&models.Job{})
	if res.Error != nil {
		h.Log.Error().Err(res.Error).Msg("delete job")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}
	if res.RowsAffected == 0 {
		return errorJSON(c, fiber.StatusNotFound, "Job not found")
	}

	return c.JSON(fiber.Map{"message": "Job deleted successfully"})
}
