package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Priority levels recognized on tasks.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Statuses recognized on tasks.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// ValidPriority reports whether p is one of the recognized priority levels.
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// ValidStatus reports whether s is one of the recognized statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// PriorityRank maps a priority level to its comparison rank. High sorts
// first; an unset or unrecognized priority ranks after Low.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Task is a single unit of work. Every task belongs to exactly one category.
type Task struct {
	ID             uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID         uuid.UUID  `json:"-" gorm:"type:char(36);not null;index"`
	CategoryID     uuid.UUID  `json:"category_id" gorm:"type:char(36);not null;index"`
	Title          string     `json:"title" gorm:"size:100;not null"`
	Description    string     `json:"description" gorm:"type:text"`
	Priority       string     `json:"priority,omitempty" gorm:"size:20"`
	EstimatedHours *float64   `json:"estimated_hours"`
	DueDate        *time.Time `json:"due_date"`
	Status         string     `json:"status" gorm:"size:20;default:'Pending'"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID and the default status before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	return nil
}
