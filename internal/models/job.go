package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

func ParseJobStatus(s string) (JobStatus, bool) {
	switch JobStatus(strings.ToLower(strings.TrimSpace(s))) {
	case JobStatusOpen:
		return JobStatusOpen, true
	case JobStatusInProgress:
		return JobStatusInProgress, true
	case JobStatusCompleted:
		return JobStatusCompleted, true
	case JobStatusCancelled:
		return JobStatusCancelled, true
	}
	return "", false
}

// CanTransition reports whether a job may move from its current status to the
// given one: open -> in-progress -> completed, with open -> cancelled as the
// only side exit. Completed and cancelled are terminal.
func (s JobStatus) CanTransition(to JobStatus) bool {
	switch s {
	case JobStatusOpen:
		return to == JobStatusInProgress || to == JobStatusCancelled
	case JobStatusInProgress:
		return to == JobStatusCompleted
	}
	return false
}

type BudgetType string

const (
	BudgetFixed  BudgetType = "fixed"
	BudgetHourly BudgetType = "hourly"
)

func ParseBudgetType(s string) (BudgetType, bool) {
	switch BudgetType(strings.ToLower(strings.TrimSpace(s))) {
	case BudgetFixed:
		return BudgetFixed, true
	case BudgetHourly:
		return BudgetHourly, true
	}
	return "", false
}

// Budget is the pricing block of a job. Min <= Max is not enforced; the
// original product never validated it and callers may rely on that.
type Budget struct {
	Type BudgetType `gorm:"type:varchar(10)" json:"type"`
	Min  float64    `json:"min"`
	Max  float64    `json:"max"`
}

type Job struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Category    string         `gorm:"type:varchar(80);not null;index" json:"category"`
	Skills      datatypes.JSON `json:"skills"`

	Budget   Budget     `gorm:"embedded;embeddedPrefix:budget_" json:"budget"`
	Deadline *time.Time `json:"deadline,omitempty"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"clientId"`
	Status   JobStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Client *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	// Submission order == insertion order; listings preload ordered by created_at.
	Proposals []Proposal `gorm:"foreignKey:JobID" json:"proposals,omitempty"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return
}
