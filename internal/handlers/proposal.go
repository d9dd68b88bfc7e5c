package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"freelancehub/internal/models"
)

// ProposalHandler covers proposal submission and the status transitions that
// drive the job lifecycle.
type ProposalHandler struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewProposalHandler(db *gorm.DB, log zerolog.Logger) *ProposalHandler {
	return &ProposalHandler{DB: db, Log: log}
}

type CreateProposalReq struct {
	JobID       string  `json:"jobId"`
	CoverLetter string  `json:"coverLetter"`
	Budget      float64 `json:"budget"`
	Timeline    string  `json:"timeline"`
}

func (h *ProposalHandler) Create(c *fiber.Ctx) error {
	uid, ok := principalID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid token")
	}

	var req CreateProposalReq
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	coverLetter := strings.TrimSpace(req.CoverLetter)
	timeline := strings.TrimSpace(req.Timeline)
	if coverLetter == "" || timeline == "" || req.Budget <= 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Cover letter, budget and timeline are required")
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID")
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Job not found")
		}
		h.Log.Error().Err(err).Msg("create proposal: load job")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	var existing models.Proposal
	err = h.DB.Where("job_id = ? AND freelancer_id = ?", jobID, uid).First(&existing).Error
	if err == nil {
		return errorJSON(c, fiber.StatusBadRequest, "Already submitted proposal")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.Log.Error().Err(err).Msg("create proposal: duplicate check")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	proposal := models.Proposal{
		JobID:        jobID,
		FreelancerID: uid,
		CoverLetter:  coverLetter,
		Budget:       req.Budget,
		Timeline:     timeline,
		Status:       models.ProposalStatusPending,
	}
	if err := h.DB.Create(&proposal).Error; err != nil {
		// the composite unique index closes the window between the check
		// above and this insert
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errorJSON(c, fiber.StatusBadRequest, "Already submitted proposal")
		}
		h.Log.Error().Err(err).Msg("create proposal: insert")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	h.DB.Preload("Freelancer").First(&proposal, "id = ?", proposal.ID)

	return c.Status(fiber.StatusCreated).JSON(proposal)
}

type UpdateProposalStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus is the owning client's accept/reject decision. Accepting moves
// the parent job to in-progress; sibling proposals are left pending on
// purpose, the client decides each one explicitly.
func (h *ProposalHandler) UpdateStatus(c *fiber.Ctx) error {
	uid, ok := principalID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid token")
	}
	proposalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid proposal ID")
	}

	var req UpdateProposalStatusReq
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	status, ok := models.ParseProposalStatus(req.Status)
	if !ok || status == models.ProposalStatusPending {
		return errorJSON(c, fiber.StatusBadRequest, "Status must be accepted or rejected")
	}

	var proposal models.Proposal
	if err := h.DB.Preload("Job").First(&proposal, "id = ?", proposalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Proposal not found")
		}
		h.Log.Error().Err(err).Msg("update proposal status: load")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	if proposal.Job == nil || proposal.Job.ClientID != uid {
		return errorJSON(c, fiber.StatusForbidden, "Not authorized")
	}
	if proposal.Status != models.ProposalStatusPending {
		// accepted/rejected are terminal
		return errorJSON(c, fiber.StatusBadRequest, "Proposal already "+string(proposal.Status))
	}

	proposal.Status = status
	if err := h.DB.Save(&proposal).Error; err != nil {
		h.Log.Error().Err(err).Msg("update proposal status: save")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	if status == models.ProposalStatusAccepted {
		if err := h.DB.Model(&models.Job{}).
			Where("id = ?", proposal.JobID).
			Update("status", models.JobStatusInProgress).Error; err != nil {
			h.Log.Error().Err(err).Msg("update proposal status: job transition")
			return errorJSON(c, fiber.StatusInternalServerError, "Server error")
		}
	}

	h.DB.Preload("Job").Preload("Freelancer").First(&proposal, "id = ?", proposal.ID)

	return c.JSON(proposal)
}

// ListMine branches on role: freelancers see their own submissions, clients
// see every proposal on jobs they own (resolved in two steps, job ids first).
func (h *ProposalHandler) ListMine(c *fiber.Ctx) error {
	uid, ok := principalID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid token")
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "User not found")
		}
		h.Log.Error().Err(err).Msg("list proposals: load user")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	q := h.DB.Model(&models.Proposal{})
	if u.Role == models.RoleFreelancer {
		q = q.Where("freelancer_id = ?", uid)
	} else {
		var jobIDs []uuid.UUID
		if err := h.DB.Model(&models.Job{}).
			Where("client_id = ?", uid).
			Pluck("id", &jobIDs).Error; err != nil {
			h.Log.Error().Err(err).Msg("list proposals: resolve jobs")
			return errorJSON(c, fiber.StatusInternalServerError, "Server error")
		}
		if len(jobIDs) == 0 {
			return c.JSON([]models.Proposal{})
		}
		q = q.Where("job_id IN ?", jobIDs)
	}

	var proposals []models.Proposal
	if err := q.
		Preload("Job", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "budget_type", "budget_min", "budget_max", "client_id", "status")
		}).
		Preload("Freelancer").
		Order("created_at DESC").
		Find(&proposals).Error; err != nil {
		h.Log.Error().Err(err).Msg("list proposals")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(proposals)
}
