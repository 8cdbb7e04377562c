package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openroad/driveschool-api/internal/apperror"
	"github.com/openroad/driveschool-api/internal/model"
	"github.com/openroad/driveschool-api/internal/schedule"
)

type availabilityRuleReader interface {
	GetEnabledByWeekday(ctx context.Context, instructorID uuid.UUID, dayOfWeek int) ([]*model.AvailabilityRule, error)
}

type activeLessonReader interface {
	GetActiveByDate(ctx context.Context, instructorID uuid.UUID, date time.Time) ([]*model.Lesson, error)
}

// AvailabilityService resolves an instructor's bookable slots for a
// calendar date. It holds no state of its own; every call recomputes from
// the store.
type AvailabilityService struct {
	rules   availabilityRuleReader
	lessons activeLessonReader
	logger  *zap.Logger
}

func NewAvailabilityService(rules availabilityRuleReader, lessons activeLessonReader, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		rules:   rules,
		lessons: lessons,
		logger:  logger,
	}
}

// ResolveSlots returns the ordered start times a student could book for
// the given instructor and date. durationMinutes is the lesson length the
// candidate interval is checked with; zero means one slot length.
//
// Every enabled window for the derived day of week is expanded and the
// results unioned, so split schedules work. A candidate survives only if
// its interval does not intersect any active lesson's
// [start, start+duration) interval.
func (s *AvailabilityService) ResolveSlots(ctx context.Context, instructorID uuid.UUID, date time.Time, durationMinutes int) ([]model.ClockTime, error) {
	if durationMinutes <= 0 {
		durationMinutes = schedule.SlotLengthMinutes
	}

	dayOfWeek := int(date.Weekday())

	rules, err := s.rules.GetEnabledByWeekday(ctx, instructorID, dayOfWeek)
	if err != nil {
		return nil, apperror.Storage("resolve availability rules", err)
	}
	if len(rules) == 0 {
		// Instructor is not working that day.
		return []model.ClockTime{}, nil
	}

	sets := make([][]model.ClockTime, 0, len(rules))
	for _, rule := range rules {
		sets = append(sets, schedule.Slots(rule.StartTime, rule.EndTime))
	}
	candidates := schedule.MergeSlots(sets...)

	booked, err := s.lessons.GetActiveByDate(ctx, instructorID, date)
	if err != nil {
		return nil, apperror.Storage("resolve booked lessons", err)
	}

	bookable := make([]model.ClockTime, 0, len(candidates))
	for _, slot := range candidates {
		if !conflicts(slot, durationMinutes, booked) {
			bookable = append(bookable, slot)
		}
	}

	s.logger.Debug("Resolved bookable slots",
		zap.String("instructor_id", instructorID.String()),
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("candidates", len(candidates)),
		zap.Int("bookable", len(bookable)),
	)

	return bookable, nil
}

func conflicts(slot model.ClockTime, durationMinutes int, booked []*model.Lesson) bool {
	slotEnd := slot.Add(durationMinutes)
	for _, lesson := range booked {
		if schedule.Overlaps(slot, slotEnd, lesson.LessonTime, lesson.EndTime()) {
			return true
		}
	}
	return false
}
