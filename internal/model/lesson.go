package model

import (
	"time"

	"github.com/google/uuid"
)

type LessonStatus string

const (
	LessonStatusScheduled LessonStatus = "scheduled" // booked, awaiting the lesson
	LessonStatusConfirmed LessonStatus = "confirmed" // confirmed by the instructor
	LessonStatusCompleted LessonStatus = "completed" // marked done by the instructor
	LessonStatusCancelled LessonStatus = "cancelled" // cancelled by either party
)

// IsActive reports whether the status counts toward slot conflicts.
// Completed and cancelled lessons release their slot.
func (s LessonStatus) IsActive() bool {
	return s == LessonStatusScheduled || s == LessonStatusConfirmed
}

// IsTerminal reports whether no further status transition is allowed.
func (s LessonStatus) IsTerminal() bool {
	return s == LessonStatusCompleted || s == LessonStatusCancelled
}

type Lesson struct {
	ID              uuid.UUID    `json:"id"`
	InstructorID    uuid.UUID    `json:"instructor_id"`
	StudentID       uuid.UUID    `json:"student_id"`
	LessonDate      time.Time    `json:"lesson_date"` // calendar date, midnight UTC
	LessonTime      ClockTime    `json:"lesson_time"`
	LessonType      string       `json:"lesson_type"`
	DurationMinutes int          `json:"duration_minutes"`
	Status          LessonStatus `json:"status"`
	Notes           string       `json:"notes,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// EndTime is the exclusive end of the interval the lesson occupies.
func (l *Lesson) EndTime() ClockTime {
	return l.LessonTime.Add(l.DurationMinutes)
}

func (l *Lesson) IsActive() bool {
	return l.Status.IsActive()
}
