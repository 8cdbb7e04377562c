package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openroad/driveschool-api/internal/model"
)

type InstructorRepository struct {
	pool *pgxpool.Pool
}

func NewInstructorRepository(pool *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{pool: pool}
}

// GetActive returns the instructors currently offering lessons.
func (r *InstructorRepository) GetActive(ctx context.Context) ([]*model.Instructor, error) {
	query := `
		SELECT id, user_id, first_name, last_name, specializations, hourly_rate, status, created_at
		FROM instructors
		WHERE status = 'active'
		ORDER BY last_name, first_name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get active instructors: %w", err)
	}
	defer rows.Close()

	var instructors []*model.Instructor
	for rows.Next() {
		instructor, err := scanInstructor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan instructor: %w", err)
		}
		instructors = append(instructors, instructor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate instructors: %w", err)
	}

	return instructors, nil
}

// GetByID returns the instructor or nil when it does not exist.
func (r *InstructorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Instructor, error) {
	query := `
		SELECT id, user_id, first_name, last_name, specializations, hourly_rate, status, created_at
		FROM instructors
		WHERE id = $1
	`

	instructor, err := scanInstructor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get instructor by id: %w", err)
	}

	return instructor, nil
}

// GetByUserID resolves the instructor profile behind a caller identity,
// or nil when the user has none.
func (r *InstructorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Instructor, error) {
	query := `
		SELECT id, user_id, first_name, last_name, specializations, hourly_rate, status, created_at
		FROM instructors
		WHERE user_id = $1
	`

	instructor, err := scanInstructor(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get instructor by user id: %w", err)
	}

	return instructor, nil
}

func scanInstructor(row pgx.Row) (*model.Instructor, error) {
	var instructor model.Instructor
	err := row.Scan(
		&instructor.ID,
		&instructor.UserID,
		&instructor.FirstName,
		&instructor.LastName,
		&instructor.Specializations,
		&instructor.HourlyRate,
		&instructor.Status,
		&instructor.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}
