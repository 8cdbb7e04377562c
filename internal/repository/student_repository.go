package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openroad/driveschool-api/internal/model"
)

type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// GetByID returns the student or nil when it does not exist.
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	query := `
		SELECT id, user_id, first_name, last_name, license_type, status, created_at
		FROM students
		WHERE id = $1
	`

	student, err := scanStudent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	return student, nil
}

// GetByUserID resolves the student profile behind a caller identity, or
// nil when the user has none.
func (r *StudentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Student, error) {
	query := `
		SELECT id, user_id, first_name, last_name, license_type, status, created_at
		FROM students
		WHERE user_id = $1
	`

	student, err := scanStudent(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by user id: %w", err)
	}

	return student, nil
}

func scanStudent(row pgx.Row) (*model.Student, error) {
	var student model.Student
	err := row.Scan(
		&student.ID,
		&student.UserID,
		&student.FirstName,
		&student.LastName,
		&student.LicenseType,
		&student.Status,
		&student.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}
