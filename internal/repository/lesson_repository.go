package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openroad/driveschool-api/internal/model"
)

type LessonRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{pool: pool}
}

// LessonFilter narrows lesson listings. Nil fields match everything.
type LessonFilter struct {
	Date   *time.Time
	Status *model.LessonStatus
}

// Create inserts a new lesson row. The partial unique index over active
// (instructor, date, time) bookings is the final authority on slot
// uniqueness; a violation comes back as ErrDuplicate.
func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	query := `
		INSERT INTO lessons (id, instructor_id, student_id, lesson_date, lesson_time, lesson_type, duration_minutes, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		lesson.ID,
		lesson.InstructorID,
		lesson.StudentID,
		lesson.LessonDate,
		lesson.LessonTime.String(),
		lesson.LessonType,
		lesson.DurationMinutes,
		lesson.Status,
		lesson.Notes,
	).Scan(&lesson.CreatedAt, &lesson.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create lesson: %w", ErrDuplicate)
		}
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

// GetByID returns the lesson or nil when it does not exist.
func (r *LessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error) {
	query := `
		SELECT id, instructor_id, student_id, lesson_date, lesson_time, lesson_type, duration_minutes, status, notes, created_at, updated_at
		FROM lessons
		WHERE id = $1
	`

	lesson, err := scanLesson(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}

	return lesson, nil
}

// GetActiveByDate returns the scheduled and confirmed lessons of one
// instructor on one calendar date, ordered by start time. These are the
// bookings that occupy slots.
func (r *LessonRepository) GetActiveByDate(ctx context.Context, instructorID uuid.UUID, date time.Time) ([]*model.Lesson, error) {
	query := `
		SELECT id, instructor_id, student_id, lesson_date, lesson_time, lesson_type, duration_minutes, status, notes, created_at, updated_at
		FROM lessons
		WHERE instructor_id = $1
		  AND lesson_date = $2
		  AND status IN ('scheduled', 'confirmed')
		ORDER BY lesson_time
	`

	rows, err := r.pool.Query(ctx, query, instructorID, date)
	if err != nil {
		return nil, fmt.Errorf("get active lessons by date: %w", err)
	}
	defer rows.Close()

	return collectLessons(rows)
}

// GetByStudentID returns a student's lessons, newest day first.
func (r *LessonRepository) GetByStudentID(ctx context.Context, studentID uuid.UUID, filter LessonFilter) ([]*model.Lesson, error) {
	query := `
		SELECT id, instructor_id, student_id, lesson_date, lesson_time, lesson_type, duration_minutes, status, notes, created_at, updated_at
		FROM lessons
		WHERE student_id = $1
		  AND ($2::date IS NULL OR lesson_date = $2)
		  AND ($3::text IS NULL OR status = $3)
		ORDER BY lesson_date DESC, lesson_time
	`

	rows, err := r.pool.Query(ctx, query, studentID, filter.Date, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("get lessons by student: %w", err)
	}
	defer rows.Close()

	return collectLessons(rows)
}

// GetByInstructorID returns an instructor's teaching schedule, newest day
// first.
func (r *LessonRepository) GetByInstructorID(ctx context.Context, instructorID uuid.UUID, filter LessonFilter) ([]*model.Lesson, error) {
	query := `
		SELECT id, instructor_id, student_id, lesson_date, lesson_time, lesson_type, duration_minutes, status, notes, created_at, updated_at
		FROM lessons
		WHERE instructor_id = $1
		  AND ($2::date IS NULL OR lesson_date = $2)
		  AND ($3::text IS NULL OR status = $3)
		ORDER BY lesson_date DESC, lesson_time
	`

	rows, err := r.pool.Query(ctx, query, instructorID, filter.Date, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("get lessons by instructor: %w", err)
	}
	defer rows.Close()

	return collectLessons(rows)
}

// UpdateStatus transitions a lesson. Lessons are never deleted, only
// status-transitioned.
func (r *LessonRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.LessonStatus) error {
	query := `
		UPDATE lessons
		SET status = $1, updated_at = now()
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update lesson status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update lesson status: %w", ErrNotFound)
	}

	return nil
}

func scanLesson(row pgx.Row) (*model.Lesson, error) {
	var lesson model.Lesson
	var lessonTime string

	err := row.Scan(
		&lesson.ID,
		&lesson.InstructorID,
		&lesson.StudentID,
		&lesson.LessonDate,
		&lessonTime,
		&lesson.LessonType,
		&lesson.DurationMinutes,
		&lesson.Status,
		&lesson.Notes,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lesson.LessonTime, err = model.ParseClockTime(lessonTime); err != nil {
		return nil, fmt.Errorf("lesson %s lesson_time: %w", lesson.ID, err)
	}

	return &lesson, nil
}

func collectLessons(rows pgx.Rows) ([]*model.Lesson, error) {
	var lessons []*model.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons: %w", err)
	}
	return lessons, nil
}
