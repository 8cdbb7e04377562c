package model

import (
	"time"

	"github.com/google/uuid"
)

type InstructorStatus string

const (
	InstructorStatusActive   InstructorStatus = "active"
	InstructorStatusInactive InstructorStatus = "inactive"
)

type Instructor struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"user_id"`
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	Specializations []string         `json:"specializations"`
	HourlyRate      int              `json:"hourly_rate"` // in cents
	Status          InstructorStatus `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
}

func (i *Instructor) IsActive() bool {
	return i.Status == InstructorStatusActive
}
