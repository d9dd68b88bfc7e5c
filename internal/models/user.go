package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
)

// ParseRole validates the user type coming from the request body.
// Role is immutable after registration.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleClient:
		return RoleClient, true
	case RoleFreelancer:
		return RoleFreelancer, true
	}
	return "", false
}

// Profile is the optional profile block a user fills in after registration.
type Profile struct {
	Bio        string         `gorm:"type:text" json:"bio"`
	Skills     datatypes.JSON `json:"skills"`
	HourlyRate float64        `json:"hourlyRate"`
	Location   string         `gorm:"type:varchar(120)" json:"location"`
	Phone      string         `gorm:"type:varchar(30)" json:"phone"`
}

// Rating is a running average maintained by the review flow, read-only here.
type Rating struct {
	Average float64 `gorm:"default:0" json:"average"`
	Count   int64   `gorm:"default:0" json:"count"`
}

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;index" json:"userType"`

	Profile Profile `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`
	Rating  Rating  `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`

	IsVerified bool `gorm:"default:false" json:"isVerified"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
