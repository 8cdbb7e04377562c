package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openroad/driveschool-api/internal/apperror"
	"github.com/openroad/driveschool-api/internal/auth"
	"github.com/openroad/driveschool-api/internal/model"
	"github.com/openroad/driveschool-api/internal/repository"
)

// Lesson lengths the school offers.
var allowedDurations = map[int]bool{60: true, 90: true, 120: true}

type studentResolver interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Student, error)
}

type instructorReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Instructor, error)
}

type lessonCreator interface {
	Create(ctx context.Context, lesson *model.Lesson) error
}

// BookingService commits new lessons. The resolver re-check here is a
// courtesy; the store's unique index over active (instructor, date, time)
// rows is what actually prevents double booking.
type BookingService struct {
	students     studentResolver
	instructors  instructorReader
	lessons      lessonCreator
	availability *AvailabilityService
	location     *time.Location
	logger       *zap.Logger

	now func() time.Time
}

func NewBookingService(
	students studentResolver,
	instructors instructorReader,
	lessons lessonCreator,
	availability *AvailabilityService,
	location *time.Location,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		students:     students,
		instructors:  instructors,
		lessons:      lessons,
		availability: availability,
		location:     location,
		logger:       logger,
		now:          time.Now,
	}
}

// BookLessonInput carries a student's booking request. The student is
// always derived from the session, never client-supplied.
type BookLessonInput struct {
	InstructorID    uuid.UUID
	LessonDate      time.Time
	LessonTime      model.ClockTime
	LessonType      string
	DurationMinutes int
	Notes           string
}

// BookLesson validates the request against current availability and
// inserts the lesson with status=scheduled.
func (s *BookingService) BookLesson(ctx context.Context, sess *auth.Session, input BookLessonInput) (*model.Lesson, error) {
	if sess == nil {
		return nil, apperror.Authentication("no authenticated caller")
	}

	student, err := s.students.GetByUserID(ctx, sess.UserID)
	if err != nil {
		return nil, apperror.Storage("resolve student profile", err)
	}
	if student == nil {
		return nil, apperror.Authentication("caller has no student profile")
	}
	if !student.IsActive() {
		return nil, apperror.Permission("student profile is not active")
	}

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	instructor, err := s.instructors.GetByID(ctx, input.InstructorID)
	if err != nil {
		return nil, apperror.Storage("resolve instructor", err)
	}
	if instructor == nil {
		return nil, apperror.Validation("instructor does not exist")
	}
	if !instructor.IsActive() {
		return nil, apperror.Validation("instructor is not accepting lessons")
	}

	slots, err := s.availability.ResolveSlots(ctx, input.InstructorID, input.LessonDate, input.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if !containsSlot(slots, input.LessonTime) {
		return nil, apperror.Conflict("slot is no longer available")
	}

	lesson := &model.Lesson{
		ID:              uuid.New(),
		InstructorID:    input.InstructorID,
		StudentID:       student.ID,
		LessonDate:      input.LessonDate,
		LessonTime:      input.LessonTime,
		LessonType:      input.LessonType,
		DurationMinutes: input.DurationMinutes,
		Status:          model.LessonStatusScheduled,
		Notes:           input.Notes,
	}

	if err := s.lessons.Create(ctx, lesson); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the race against a concurrent booking.
			return nil, apperror.Conflict("slot is no longer available")
		}
		return nil, apperror.Storage("create lesson", err)
	}

	s.logger.Info("Lesson booked",
		zap.String("lesson_id", lesson.ID.String()),
		zap.String("student_id", student.ID.String()),
		zap.String("instructor_id", instructor.ID.String()),
		zap.String("date", lesson.LessonDate.Format("2006-01-02")),
		zap.String("time", lesson.LessonTime.String()),
		zap.Int("duration_minutes", lesson.DurationMinutes),
	)

	return lesson, nil
}

func (s *BookingService) validateInput(input BookLessonInput) error {
	if input.InstructorID == uuid.Nil {
		return apperror.Validation("instructor is required")
	}
	if input.LessonType == "" {
		return apperror.Validation("lesson type is required")
	}
	if !allowedDurations[input.DurationMinutes] {
		return apperror.Validation("duration must be 60, 90 or 120 minutes")
	}
	if input.LessonDate.IsZero() {
		return apperror.Validation("lesson date is required")
	}
	if dateOnly(input.LessonDate, time.UTC).Before(dateOnly(s.now(), s.location)) {
		return apperror.Validation("lesson date is in the past")
	}
	return nil
}

// dateOnly strips the time of day, comparing calendar dates only.
func dateOnly(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func containsSlot(slots []model.ClockTime, t model.ClockTime) bool {
	for _, slot := range slots {
		if slot == t {
			return true
		}
	}
	return false
}
