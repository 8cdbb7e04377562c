package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openroad/driveschool-api/internal/apperror"
	"github.com/openroad/driveschool-api/internal/auth"
	"github.com/openroad/driveschool-api/internal/model"
)

type instructorStore interface {
	GetActive(ctx context.Context) ([]*model.Instructor, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Instructor, error)
}

type availabilityRuleStore interface {
	Create(ctx context.Context, rule *model.AvailabilityRule) error
	GetByID(ctx context.Context, id int64) (*model.AvailabilityRule, error)
	GetByInstructorID(ctx context.Context, instructorID uuid.UUID) ([]*model.AvailabilityRule, error)
	Update(ctx context.Context, rule *model.AvailabilityRule) error
	Delete(ctx context.Context, id int64) error
}

// InstructorService lists instructors for the booking UI and lets an
// instructor manage their own weekly availability rules.
type InstructorService struct {
	instructors instructorStore
	rules       availabilityRuleStore
	logger      *zap.Logger
}

func NewInstructorService(instructors instructorStore, rules availabilityRuleStore, logger *zap.Logger) *InstructorService {
	return &InstructorService{
		instructors: instructors,
		rules:       rules,
		logger:      logger,
	}
}

// ListActive returns the instructors students may book with.
func (s *InstructorService) ListActive(ctx context.Context) ([]*model.Instructor, error) {
	instructors, err := s.instructors.GetActive(ctx)
	if err != nil {
		return nil, apperror.Storage("list instructors", err)
	}
	return instructors, nil
}

// AvailabilityRuleInput carries one weekly window.
type AvailabilityRuleInput struct {
	DayOfWeek   int
	StartTime   model.ClockTime
	EndTime     model.ClockTime
	IsAvailable bool
}

// ListRules returns the caller's own weekly availability.
func (s *InstructorService) ListRules(ctx context.Context, sess *auth.Session) ([]*model.AvailabilityRule, error) {
	instructor, err := s.resolveInstructor(ctx, sess)
	if err != nil {
		return nil, err
	}

	rules, err := s.rules.GetByInstructorID(ctx, instructor.ID)
	if err != nil {
		return nil, apperror.Storage("list availability rules", err)
	}
	return rules, nil
}

// CreateRule adds a weekly window for the caller.
func (s *InstructorService) CreateRule(ctx context.Context, sess *auth.Session, input AvailabilityRuleInput) (*model.AvailabilityRule, error) {
	instructor, err := s.resolveInstructor(ctx, sess)
	if err != nil {
		return nil, err
	}
	if err := validateRuleInput(input); err != nil {
		return nil, err
	}

	rule := &model.AvailabilityRule{
		InstructorID: instructor.ID,
		DayOfWeek:    input.DayOfWeek,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		IsAvailable:  input.IsAvailable,
	}

	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, apperror.Storage("create availability rule", err)
	}

	s.logger.Info("Availability rule created",
		zap.String("instructor_id", instructor.ID.String()),
		zap.Int("day_of_week", rule.DayOfWeek),
		zap.String("start", rule.StartTime.String()),
		zap.String("end", rule.EndTime.String()),
	)

	return rule, nil
}

// UpdateRule rewrites one of the caller's windows.
func (s *InstructorService) UpdateRule(ctx context.Context, sess *auth.Session, ruleID int64, input AvailabilityRuleInput) (*model.AvailabilityRule, error) {
	instructor, err := s.resolveInstructor(ctx, sess)
	if err != nil {
		return nil, err
	}
	if err := validateRuleInput(input); err != nil {
		return nil, err
	}

	rule, err := s.ownedRule(ctx, instructor, ruleID)
	if err != nil {
		return nil, err
	}

	rule.DayOfWeek = input.DayOfWeek
	rule.StartTime = input.StartTime
	rule.EndTime = input.EndTime
	rule.IsAvailable = input.IsAvailable

	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, apperror.Storage("update availability rule", err)
	}

	return rule, nil
}

// DeleteRule removes one of the caller's windows.
func (s *InstructorService) DeleteRule(ctx context.Context, sess *auth.Session, ruleID int64) error {
	instructor, err := s.resolveInstructor(ctx, sess)
	if err != nil {
		return err
	}

	if _, err := s.ownedRule(ctx, instructor, ruleID); err != nil {
		return err
	}

	if err := s.rules.Delete(ctx, ruleID); err != nil {
		return apperror.Storage("delete availability rule", err)
	}

	s.logger.Info("Availability rule deleted",
		zap.String("instructor_id", instructor.ID.String()),
		zap.Int64("rule_id", ruleID),
	)

	return nil
}

func (s *InstructorService) resolveInstructor(ctx context.Context, sess *auth.Session) (*model.Instructor, error) {
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
	return instructor, nil
}

func (s *InstructorService) ownedRule(ctx context.Context, instructor *model.Instructor, ruleID int64) (*model.AvailabilityRule, error) {
	rule, err := s.rules.GetByID(ctx, ruleID)
	if err != nil {
		return nil, apperror.Storage("get availability rule", err)
	}
	if rule == nil {
		return nil, apperror.NotFound("availability rule not found")
	}
	if rule.InstructorID != instructor.ID {
		return nil, apperror.Permission("availability rule belongs to another instructor")
	}
	return rule, nil
}

func validateRuleInput(input AvailabilityRuleInput) error {
	if input.DayOfWeek < 0 || input.DayOfWeek > 6 {
		return apperror.Validation("day of week must be 0 (Sunday) through 6 (Saturday)")
	}
	if input.StartTime >= input.EndTime {
		return apperror.Validation("start time must be before end time")
	}
	return nil
}
