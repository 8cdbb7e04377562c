package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openroad/driveschool-api/internal/apperror"
	"github.com/openroad/driveschool-api/internal/auth"
	"github.com/openroad/driveschool-api/internal/model"
)

func newInstructorFixture() (*InstructorService, *fakeRuleStore, *model.Instructor, *auth.Session) {
	userID := uuid.New()
	instructor := &model.Instructor{ID: uuid.New(), UserID: userID, Status: model.InstructorStatusActive}
	rules := &fakeRuleStore{}
	svc := NewInstructorService(
		&fakeInstructorStore{instructors: []*model.Instructor{instructor}},
		rules,
		zap.NewNop(),
	)
	return svc, rules, instructor, &auth.Session{UserID: userID, Role: auth.RoleInstructor}
}

func TestListActiveInstructors(t *testing.T) {
	active := &model.Instructor{ID: uuid.New(), UserID: uuid.New(), Status: model.InstructorStatusActive}
	inactive := &model.Instructor{ID: uuid.New(), UserID: uuid.New(), Status: model.InstructorStatusInactive}
	svc := NewInstructorService(
		&fakeInstructorStore{instructors: []*model.Instructor{active, inactive}},
		&fakeRuleStore{},
		zap.NewNop(),
	)

	got, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, active.ID, got[0].ID)
}

func TestAvailabilityRuleLifecycle(t *testing.T) {
	svc, _, instructor, sess := newInstructorFixture()
	ctx := context.Background()

	rule, err := svc.CreateRule(ctx, sess, AvailabilityRuleInput{
		DayOfWeek:   1,
		StartTime:   model.MustClockTime("09:00"),
		EndTime:     model.MustClockTime("17:00"),
		IsAvailable: true,
	})
	require.NoError(t, err)
	require.Equal(t, instructor.ID, rule.InstructorID)
	require.NotZero(t, rule.ID)

	listed, err := svc.ListRules(ctx, sess)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	updated, err := svc.UpdateRule(ctx, sess, rule.ID, AvailabilityRuleInput{
		DayOfWeek:   2,
		StartTime:   model.MustClockTime("10:00"),
		EndTime:     model.MustClockTime("14:00"),
		IsAvailable: false,
	})
	require.NoError(t, err)
	require.Equal(t, 2, updated.DayOfWeek)
	require.False(t, updated.IsAvailable)

	require.NoError(t, svc.DeleteRule(ctx, sess, rule.ID))

	listed, err = svc.ListRules(ctx, sess)
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestAvailabilityRuleValidation(t *testing.T) {
	svc, _, _, sess := newInstructorFixture()
	ctx := context.Background()

	tests := []struct {
		name  string
		input AvailabilityRuleInput
	}{
		{
			name:  "day out of range",
			input: AvailabilityRuleInput{DayOfWeek: 7, StartTime: model.MustClockTime("09:00"), EndTime: model.MustClockTime("10:00")},
		},
		{
			name:  "negative day",
			input: AvailabilityRuleInput{DayOfWeek: -1, StartTime: model.MustClockTime("09:00"), EndTime: model.MustClockTime("10:00")},
		},
		{
			name:  "start after end",
			input: AvailabilityRuleInput{DayOfWeek: 1, StartTime: model.MustClockTime("12:00"), EndTime: model.MustClockTime("09:00")},
		},
		{
			name:  "empty window",
			input: AvailabilityRuleInput{DayOfWeek: 1, StartTime: model.MustClockTime("09:00"), EndTime: model.MustClockTime("09:00")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRule(ctx, sess, tt.input)
			if !apperror.IsKind(err, apperror.KindValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestAvailabilityRuleOwnership(t *testing.T) {
	svc, rules, _, sess := newInstructorFixture()
	ctx := context.Background()

	// A rule belonging to somebody else.
	foreign := &model.AvailabilityRule{
		InstructorID: uuid.New(),
		DayOfWeek:    1,
		StartTime:    model.MustClockTime("09:00"),
		EndTime:      model.MustClockTime("17:00"),
		IsAvailable:  true,
	}
	require.NoError(t, rules.Create(ctx, foreign))

	input := AvailabilityRuleInput{DayOfWeek: 1, StartTime: model.MustClockTime("09:00"), EndTime: model.MustClockTime("10:00")}

	_, err := svc.UpdateRule(ctx, sess, foreign.ID, input)
	if !apperror.IsKind(err, apperror.KindPermission) {
		t.Fatalf("foreign update: want permission error, got %v", err)
	}
	if err := svc.DeleteRule(ctx, sess, foreign.ID); !apperror.IsKind(err, apperror.KindPermission) {
		t.Fatalf("foreign delete: want permission error, got %v", err)
	}
	if _, err := svc.UpdateRule(ctx, sess, 999, input); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("missing rule: want not found, got %v", err)
	}
}

func TestRulesRequireInstructorProfile(t *testing.T) {
	svc, _, _, _ := newInstructorFixture()

	sess := &auth.Session{UserID: uuid.New(), Role: auth.RoleInstructor}
	_, err := svc.ListRules(context.Background(), sess)
	if !apperror.IsKind(err, apperror.KindAuthentication) {
		t.Fatalf("caller without profile: want authentication error, got %v", err)
	}
}
