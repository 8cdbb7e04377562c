package model

import (
	"time"

	"github.com/google/uuid"
)

type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "active"
	StudentStatusSuspended StudentStatus = "suspended"
	StudentStatusGraduated StudentStatus = "graduated"
)

type Student struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	LicenseType string        `json:"license_type"`
	Status      StudentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (s *Student) IsActive() bool {
	return s.Status == StudentStatusActive
}
