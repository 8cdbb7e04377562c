package controller

import (
	"time"

	"github.com/openroad/driveschool-api/internal/model"
)

const dateLayout = "2006-01-02"

type bookLessonRequest struct {
	InstructorID    string `json:"instructor_id" validate:"required,uuid"`
	LessonDate      string `json:"lesson_date" validate:"required,datetime=2006-01-02"`
	LessonTime      string `json:"lesson_time" validate:"required"`
	LessonType      string `json:"lesson_type" validate:"required,max=100"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,oneof=60 90 120"`
	Notes           string `json:"notes" validate:"omitempty,max=1000"`
}

type availabilityRuleRequest struct {
	DayOfWeek   *int   `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	IsAvailable bool   `json:"is_available"`
}

// lessonResponse renders dates as plain calendar dates, matching the
// shape the store and UI speak.
type lessonResponse struct {
	ID              string          `json:"id"`
	InstructorID    string          `json:"instructor_id"`
	StudentID       string          `json:"student_id"`
	LessonDate      string          `json:"lesson_date"`
	LessonTime      model.ClockTime `json:"lesson_time"`
	LessonType      string          `json:"lesson_type"`
	DurationMinutes int             `json:"duration_minutes"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toLessonResponse(lesson *model.Lesson) lessonResponse {
	return lessonResponse{
		ID:              lesson.ID.String(),
		InstructorID:    lesson.InstructorID.String(),
		StudentID:       lesson.StudentID.String(),
		LessonDate:      lesson.LessonDate.Format(dateLayout),
		LessonTime:      lesson.LessonTime,
		LessonType:      lesson.LessonType,
		DurationMinutes: lesson.DurationMinutes,
		Status:          string(lesson.Status),
		Notes:           lesson.Notes,
		CreatedAt:       lesson.CreatedAt,
	}
}

func toLessonResponses(lessons []*model.Lesson) []lessonResponse {
	out := make([]lessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		out = append(out, toLessonResponse(lesson))
	}
	return out
}
