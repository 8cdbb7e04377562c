package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openroad/driveschool-api/internal/model"
)

type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

// Create inserts a new weekly availability window.
func (r *AvailabilityRepository) Create(ctx context.Context, rule *model.AvailabilityRule) error {
	query := `
		INSERT INTO schedule_availability (instructor_id, day_of_week, start_time, end_time, is_available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		rule.InstructorID,
		rule.DayOfWeek,
		rule.StartTime.String(),
		rule.EndTime.String(),
		rule.IsAvailable,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create availability rule: %w", err)
	}

	return nil
}

// GetByID returns the rule or nil when it does not exist.
func (r *AvailabilityRepository) GetByID(ctx context.Context, id int64) (*model.AvailabilityRule, error) {
	query := `
		SELECT id, instructor_id, day_of_week, start_time, end_time, is_available, created_at, updated_at
		FROM schedule_availability
		WHERE id = $1
	`

	rule, err := scanAvailabilityRule(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get availability rule by id: %w", err)
	}

	return rule, nil
}

// GetByInstructorID returns every rule of one instructor, enabled or not,
// ordered for a stable weekly view.
func (r *AvailabilityRepository) GetByInstructorID(ctx context.Context, instructorID uuid.UUID) ([]*model.AvailabilityRule, error) {
	query := `
		SELECT id, instructor_id, day_of_week, start_time, end_time, is_available, created_at, updated_at
		FROM schedule_availability
		WHERE instructor_id = $1
		ORDER BY day_of_week, start_time
	`

	rows, err := r.pool.Query(ctx, query, instructorID)
	if err != nil {
		return nil, fmt.Errorf("get availability rules by instructor: %w", err)
	}
	defer rows.Close()

	return collectAvailabilityRules(rows)
}

// GetEnabledByWeekday returns the enabled open-hours windows for one
// instructor on one day of week, ordered by start time.
func (r *AvailabilityRepository) GetEnabledByWeekday(ctx context.Context, instructorID uuid.UUID, dayOfWeek int) ([]*model.AvailabilityRule, error) {
	query := `
		SELECT id, instructor_id, day_of_week, start_time, end_time, is_available, created_at, updated_at
		FROM schedule_availability
		WHERE instructor_id = $1
		  AND day_of_week = $2
		  AND is_available = true
		ORDER BY start_time
	`

	rows, err := r.pool.Query(ctx, query, instructorID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("get enabled availability rules: %w", err)
	}
	defer rows.Close()

	return collectAvailabilityRules(rows)
}

// Update rewrites the window and enabled flag of an existing rule.
func (r *AvailabilityRepository) Update(ctx context.Context, rule *model.AvailabilityRule) error {
	query := `
		UPDATE schedule_availability
		SET day_of_week = $1, start_time = $2, end_time = $3, is_available = $4, updated_at = now()
		WHERE id = $5
	`

	result, err := r.pool.Exec(
		ctx, query,
		rule.DayOfWeek,
		rule.StartTime.String(),
		rule.EndTime.String(),
		rule.IsAvailable,
		rule.ID,
	)
	if err != nil {
		return fmt.Errorf("update availability rule: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update availability rule: %w", ErrNotFound)
	}

	return nil
}

// Delete removes a rule.
func (r *AvailabilityRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM schedule_availability WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete availability rule: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete availability rule: %w", ErrNotFound)
	}

	return nil
}

func scanAvailabilityRule(row pgx.Row) (*model.AvailabilityRule, error) {
	var rule model.AvailabilityRule
	var start, end string

	err := row.Scan(
		&rule.ID,
		&rule.InstructorID,
		&rule.DayOfWeek,
		&start,
		&end,
		&rule.IsAvailable,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rule.StartTime, err = model.ParseClockTime(start); err != nil {
		return nil, fmt.Errorf("rule %d start_time: %w", rule.ID, err)
	}
	if rule.EndTime, err = model.ParseClockTime(end); err != nil {
		return nil, fmt.Errorf("rule %d end_time: %w", rule.ID, err)
	}

	return &rule, nil
}

func collectAvailabilityRules(rows pgx.Rows) ([]*model.AvailabilityRule, error) {
	var rules []*model.AvailabilityRule
	for rows.Next() {
		rule, err := scanAvailabilityRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan availability rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate availability rules: %w", err)
	}
	return rules, nil
}
