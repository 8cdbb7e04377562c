package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openroad/driveschool-api/internal/apperror"
	"github.com/openroad/driveschool-api/internal/model"
)

var (
	testMonday = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC) // weekday 1
	testSunday = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC) // weekday 0
)

func assertSlots(t *testing.T, got []model.ClockTime, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got slots %v, want %v", got, want)
	}
	for i, slot := range got {
		if slot.String() != want[i] {
			t.Fatalf("slot[%d] = %s, want %s (full: %v)", i, slot, want[i], got)
		}
	}
}

func TestResolveSlotsNoRules(t *testing.T) {
	instructorID := uuid.New()
	svc := NewAvailabilityService(&fakeRuleStore{}, &fakeLessonStore{}, zap.NewNop())

	slots, err := svc.ResolveSlots(context.Background(), instructorID, testSunday, 60)
	if err != nil {
		t.Fatalf("ResolveSlots: %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Fatalf("day without rules should yield empty non-nil slice, got %v", slots)
	}
}

func TestResolveSlotsSingleWindow(t *testing.T) {
	instructorID := uuid.New()
	rules := &fakeRuleStore{rules: []*model.AvailabilityRule{{
		ID:           1,
		InstructorID: instructorID,
		DayOfWeek:    1,
		StartTime:    model.MustClockTime("09:00"),
		EndTime:      model.MustClockTime("13:00"),
		IsAvailable:  true,
	}}}
	svc := NewAvailabilityService(rules, &fakeLessonStore{}, zap.NewNop())

	slots, err := svc.ResolveSlots(context.Background(), instructorID, testMonday, 60)
	if err != nil {
		t.Fatalf("ResolveSlots: %v", err)
	}
	assertSlots(t, slots, "09:00", "10:00", "11:00", "12:00")
}

func TestResolveSlotsSplitDay(t *testing.T) {
	instructorID := uuid.New()
	rules := &fakeRuleStore{rules: []*model.AvailabilityRule{
		{
			ID: 1, InstructorID: instructorID, DayOfWeek: 1,
			StartTime: model.MustClockTime("09:00"), EndTime: model.MustClockTime("12:00"),
			IsAvailable: true,
		},
		{
			ID: 2, InstructorID: instructorID, DayOfWeek: 1,
			StartTime: model.MustClockTime("14:00"), EndTime: model.MustClockTime("17:00"),
			IsAvailable: true,
		},
		// Disabled window must not contribute.
		{
			ID: 3, InstructorID: instructorID, DayOfWeek: 1,
			StartTime: model.MustClockTime("18:00"), EndTime: model.MustClockTime("20:00"),
			IsAvailable: false,
		},
	}}
	svc := NewAvailabilityService(rules, &fakeLessonStore{}, zap.NewNop())

	slots, err := svc.ResolveSlots(context.Background(), instructorID, testMonday, 60)
	if err != nil {
		t.Fatalf("ResolveSlots: %v", err)
	}
	assertSlots(t, slots, "09:00", "10:00", "11:00", "14:00", "15:00", "16:00")
}

func TestResolveSlotsExcludesBooked(t *testing.T) {
	instructorID := uuid.New()
	rules := &fakeRuleStore{rules: []*model.AvailabilityRule{{
		ID: 1, InstructorID: instructorID, DayOfWeek: 1,
		StartTime: model.MustClockTime("09:00"), EndTime: model.MustClockTime("14:00"),
		IsAvailable: true,
	}}}
	lessons := &fakeLessonStore{lessons: []*model.Lesson{
		{
			ID: uuid.New(), InstructorID: instructorID,
			LessonDate: testMonday, LessonTime: model.MustClockTime("10:00"),
			DurationMinutes: 60, Status: model.LessonStatusScheduled,
		},
		// Cancelled lessons release their slot.
		{
			ID: uuid.New(), InstructorID: instructorID,
			LessonDate: testMonday, LessonTime: model.MustClockTime("12:00"),
			DurationMinutes: 60, Status: model.LessonStatusCancelled,
		},
	}}
	svc := NewAvailabilityService(rules, lessons, zap.NewNop())

	slots, err := svc.ResolveSlots(context.Background(), instructorID, testMonday, 60)
	if err != nil {
		t.Fatalf("ResolveSlots: %v", err)
	}
	assertSlots(t, slots, "09:00", "11:00", "12:00", "13:00")
}

func TestResolveSlotsLongLessonBlocksFollowingSlot(t *testing.T) {
	instructorID := uuid.New()
	rules := &fakeRuleStore{rules: []*model.AvailabilityRule{{
		ID: 1, InstructorID: instructorID, DayOfWeek: 1,
		StartTime: model.MustClockTime("09:00"), EndTime: model.MustClockTime("14:00"),
		IsAvailable: true,
	}}}
	// A 90-minute lesson at 10:00 occupies [10:00, 11:30).
	lessons := &fakeLessonStore{lessons: []*model.Lesson{{
		ID: uuid.New(), InstructorID: instructorID,
		LessonDate: testMonday, LessonTime: model.MustClockTime("10:00"),
		DurationMinutes: 90, Status: model.LessonStatusConfirmed,
	}}}
	svc := NewAvailabilityService(rules, lessons, zap.NewNop())

	slots, err := svc.ResolveSlots(context.Background(), instructorID, testMonday, 60)
	if err != nil {
		t.Fatalf("ResolveSlots: %v", err)
	}
	// 11:00 collides with the lesson's tail; 12:00 is the next free start.
	assertSlots(t, slots, "09:00", "12:00", "13:00")
}

func TestResolveSlotsRequestedDurationMustFit(t *testing.T) {
	instructorID := uuid.New()
	rules := &fakeRuleStore{rules: []*model.AvailabilityRule{{
		ID: 1, InstructorID: instructorID, DayOfWeek: 1,
		StartTime: model.MustClockTime("09:00"), EndTime: model.MustClockTime("13:00"),
		IsAvailable: true,
	}}}
	lessons := &fakeLessonStore{lessons: []*model.Lesson{{
		ID: uuid.New(), InstructorID: instructorID,
		LessonDate: testMonday, LessonTime: model.MustClockTime("11:00"),
		DurationMinutes: 60, Status: model.LessonStatusScheduled,
	}}}
	svc := NewAvailabilityService(rules, lessons, zap.NewNop())

	// A 120-minute candidate at 10:00 would run into the 11:00 lesson.
	slots, err := svc.ResolveSlots(context.Background(), instructorID, testMonday, 120)
	if err != nil {
		t.Fatalf("ResolveSlots: %v", err)
	}
	assertSlots(t, slots, "09:00", "12:00")
}

func TestResolveSlotsStorageError(t *testing.T) {
	svc := NewAvailabilityService(&fakeRuleStore{err: errors.New("connection reset")}, &fakeLessonStore{}, zap.NewNop())

	_, err := svc.ResolveSlots(context.Background(), uuid.New(), testMonday, 60)
	if !apperror.IsKind(err, apperror.KindStorage) {
		t.Fatalf("want storage error, got %v", err)
	}
}
