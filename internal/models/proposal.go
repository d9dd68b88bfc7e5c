package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

func ParseProposalStatus(s string) (ProposalStatus, bool) {
	switch ProposalStatus(strings.ToLower(strings.TrimSpace(s))) {
	case ProposalStatusPending:
		return ProposalStatusPending, true
	case ProposalStatusAccepted:
		return ProposalStatusAccepted, true
	case ProposalStatusRejected:
		return ProposalStatusRejected, true
	}
	return "", false
}

// Proposal is a freelancer's bid on a job. The composite unique index backs
// the one-proposal-per-(job,freelancer) rule at the storage level, closing the
// window the application-level existence check leaves open.
type Proposal struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_proposals_job_freelancer" json:"jobId"`
	FreelancerID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_proposals_job_freelancer" json:"freelancerId"`

	CoverLetter string         `gorm:"type:text;not null" json:"coverLetter"`
	Budget      float64        `gorm:"not null" json:"budget"`
	Timeline    string         `gorm:"type:varchar(120);not null" json:"timeline"`
	Status      ProposalStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Job        *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Freelancer *User `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}

func (p *Proposal) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
