package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project lifecycle states.
const (
	StatusPlanned   = "planned"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// Statuses lists every valid project status.
var Statuses = []string{StatusPlanned, StatusActive, StatusCompleted, StatusArchived}

var (
	ErrInvalidName        = errors.New("project name is required and must be at most 150 characters")
	ErrInvalidDescription = errors.New("description must be at most 2000 characters")
	ErrInvalidStatus      = errors.New("status must be one of: " + strings.Join(Statuses, ", "))
)

// Project is a unit of work owned by a user.
type Project struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	Name        string       `gorm:"size:150;not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Status      string       `gorm:"size:20;not null;default:planned;index" json:"status"`
	OwnerID     string       `gorm:"size:36;not null;index" json:"ownerId"`
	Attachments []Attachment `gorm:"constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// BeforeCreate assigns a UUID and the default status.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = StatusPlanned
	}
	return nil
}

// NormalizeName trims the name and checks its length.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > 150 {
		return "", ErrInvalidName
	}
	return name, nil
}

// NormalizeDescription trims the description and checks its length.
func NormalizeDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if len([]rune(description)) > 2000 {
		return "", ErrInvalidDescription
	}
	return description, nil
}

// ValidateStatus checks the status is known.
func ValidateStatus(status string) error {
	for _, s := range Statuses {
		if s == status {
			return nil
		}
	}
	return ErrInvalidStatus
}
