package model

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityRule is a recurring weekly open-hours window for one
// instructor on one day of week. Several windows may exist for the same
// day (split morning/afternoon schedules).
type AvailabilityRule struct {
	ID           int64     `json:"id"`
	InstructorID uuid.UUID `json:"instructor_id"`
	DayOfWeek    int       `json:"day_of_week"` // 0 = Sunday, 6 = Saturday
	StartTime    ClockTime `json:"start_time"`
	EndTime      ClockTime `json:"end_time"`
	IsAvailable  bool      `json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
