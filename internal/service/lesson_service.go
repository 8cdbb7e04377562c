package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openroad/driveschool-api/internal/apperror"
	"github.com/openroad/driveschool-api/internal/auth"
	"github.com/openroad/driveschool-api/internal/model"
	"github.com/openroad/driveschool-api/internal/repository"
)

type lessonStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error)
	GetByStudentID(ctx context.Context, studentID uuid.UUID, filter repository.LessonFilter) ([]*model.Lesson, error)
	GetByInstructorID(ctx context.Context, instructorID uuid.UUID, filter repository.LessonFilter) ([]*model.Lesson, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.LessonStatus) error
}

type instructorResolver interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Instructor, error)
}

// LessonService lists lessons and drives the status state machine:
// scheduled -> confirmed -> completed, with cancellation from either
// active status. Completed and cancelled are terminal; rows are never
// deleted.
type LessonService struct {
	lessons     lessonStore
	students    studentResolver
	instructors instructorResolver
	logger      *zap.Logger
}

func NewLessonService(lessons lessonStore, students studentResolver, instructors instructorResolver, logger *zap.Logger) *LessonService {
	return &LessonService{
		lessons:     lessons,
		students:    students,
		instructors: instructors,
		logger:      logger,
	}
}

// ListForCaller returns the caller's own lessons: a student's bookings or
// an instructor's teaching schedule.
func (s *LessonService) ListForCaller(ctx context.Context, sess *auth.Session, filter repository.LessonFilter) ([]*model.Lesson, error) {
	if sess == nil {
		return nil, apperror.Authentication("no authenticated caller")
	}

	switch {
	case sess.IsStudent():
		student, err := s.students.GetByUserID(ctx, sess.UserID)
		if err != nil {
			return nil, apperror.Storage("resolve student profile", err)
		}
		if student == nil {
			return nil, apperror.Authentication("caller has no student profile")
		}
		lessons, err := s.lessons.GetByStudentID(ctx, student.ID, filter)
		if err != nil {
			return nil, apperror.Storage("list lessons", err)
		}
		return lessons, nil

	case sess.IsInstructor():
		instructor, err := s.instructors.GetByUserID(ctx, sess.UserID)
		if err != nil {
			return nil, apperror.Storage("resolve instructor profile", err)
		}
		if instructor == nil {
			return nil, apperror.Authentication("caller has no instructor profile")
		}
		lessons, err := s.lessons.GetByInstructorID(ctx, instructor.ID, filter)
		if err != nil {
			return nil, apperror.Storage("list lessons", err)
		}
		return lessons, nil

	default:
		return nil, apperror.Permission("role has no lesson view")
	}
}

// Confirm moves a scheduled lesson to confirmed. Instructor action.
func (s *LessonService) Confirm(ctx context.Context, sess *auth.Session, lessonID uuid.UUID) (*model.Lesson, error) {
	lesson, err := s.ownedByInstructor(ctx, sess, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.Status != model.LessonStatusScheduled {
		return nil, apperror.Conflict("only scheduled lessons can be confirmed")
	}
	return s.transition(ctx, lesson, model.LessonStatusConfirmed)
}

// Complete marks an active lesson as done. Instructor action.
func (s *LessonService) Complete(ctx context.Context, sess *auth.Session, lessonID uuid.UUID) (*model.Lesson, error) {
	lesson, err := s.ownedByInstructor(ctx, sess, lessonID)
	if err != nil {
		return nil, err
	}
	if !lesson.IsActive() {
		return nil, apperror.Conflict("lesson is not active")
	}
	return s.transition(ctx, lesson, model.LessonStatusCompleted)
}

// Cancel releases an active lesson's slot. Allowed to the lesson's
// student or instructor.
func (s *LessonService) Cancel(ctx context.Context, sess *auth.Session, lessonID uuid.UUID) (*model.Lesson, error) {
	if sess == nil {
		return nil, apperror.Authentication("no authenticated caller")
	}

	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, apperror.Storage("get lesson", err)
	}
	if lesson == nil {
		return nil, apperror.NotFound("lesson not found")
	}

	owns, err := s.callerOwnsLesson(ctx, sess, lesson)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, apperror.Permission("no permission to cancel this lesson")
	}

	if !lesson.IsActive() {
		return nil, apperror.Conflict("lesson is not active")
	}
	return s.transition(ctx, lesson, model.LessonStatusCancelled)
}

func (s *LessonService) ownedByInstructor(ctx context.Context, sess *auth.Session, lessonID uuid.UUID) (*model.Lesson, error) {
	if sess == nil {
		return nil, apperror.Authentication("no authenticated caller")
	}

	instructor, err := s.instructors.GetByUserID(ctx, sess.UserID)
	if err != nil {
		return nil, apperror.Storage("resolve instructor profile", err)
	}
	if instructor == nil {
		return nil, apperror.Authentication("caller has no instructor profile")
	}

	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, apperror.Storage("get lesson", err)
	}
	if lesson == nil {
		return nil, apperror.NotFound("lesson not found")
	}
	if lesson.InstructorID != instructor.ID {
		return nil, apperror.Permission("lesson belongs to another instructor")
	}

	return lesson, nil
}

func (s *LessonService) callerOwnsLesson(ctx context.Context, sess *auth.Session, lesson *model.Lesson) (bool, error) {
	switch {
	case sess.IsStudent():
		student, err := s.students.GetByUserID(ctx, sess.UserID)
		if err != nil {
			return false, apperror.Storage("resolve student profile", err)
		}
		return student != nil && student.ID == lesson.StudentID, nil
	case sess.IsInstructor():
		instructor, err := s.instructors.GetByUserID(ctx, sess.UserID)
		if err != nil {
			return false, apperror.Storage("resolve instructor profile", err)
		}
		return instructor != nil && instructor.ID == lesson.InstructorID, nil
	default:
		return false, nil
	}
}

func (s *LessonService) transition(ctx context.Context, lesson *model.Lesson, status model.LessonStatus) (*model.Lesson, error) {
	if err := s.lessons.UpdateStatus(ctx, lesson.ID, status); err != nil {
		return nil, apperror.Storage("update lesson status", err)
	}

	s.logger.Info("Lesson status changed",
		zap.String("lesson_id", lesson.ID.String()),
		zap.String("from", string(lesson.Status)),
		zap.String("to", string(status)),
	)

	lesson.Status = status
	return lesson, nil
}
