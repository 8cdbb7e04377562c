package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openroad/driveschool-api/internal/model"
	"github.com/openroad/driveschool-api/internal/repository"
)

// In-memory stand-ins for the pgx repositories. The lesson fake enforces
// the same active-slot uniqueness the partial index provides, so booking
// races can be simulated without a database.

type fakeRuleStore struct {
	rules []*model.AvailabilityRule
	err   error
}

func (f *fakeRuleStore) GetEnabledByWeekday(_ context.Context, instructorID uuid.UUID, dayOfWeek int) ([]*model.AvailabilityRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.AvailabilityRule
	for _, rule := range f.rules {
		if rule.InstructorID == instructorID && rule.DayOfWeek == dayOfWeek && rule.IsAvailable {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (f *fakeRuleStore) Create(_ context.Context, rule *model.AvailabilityRule) error {
	if f.err != nil {
		return f.err
	}
	rule.ID = int64(len(f.rules) + 1)
	f.rules = append(f.rules, rule)
	return nil
}

func (f *fakeRuleStore) GetByID(_ context.Context, id int64) (*model.AvailabilityRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, rule := range f.rules {
		if rule.ID == id {
			return rule, nil
		}
	}
	return nil, nil
}

func (f *fakeRuleStore) GetByInstructorID(_ context.Context, instructorID uuid.UUID) ([]*model.AvailabilityRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.AvailabilityRule
	for _, rule := range f.rules {
		if rule.InstructorID == instructorID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (f *fakeRuleStore) Update(_ context.Context, rule *model.AvailabilityRule) error {
	if f.err != nil {
		return f.err
	}
	for i, existing := range f.rules {
		if existing.ID == rule.ID {
			f.rules[i] = rule
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeRuleStore) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	for i, existing := range f.rules {
		if existing.ID == id {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeLessonStore struct {
	lessons []*model.Lesson
	err     error
}

func (f *fakeLessonStore) Create(_ context.Context, lesson *model.Lesson) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.lessons {
		if existing.InstructorID == lesson.InstructorID &&
			existing.LessonDate.Equal(lesson.LessonDate) &&
			existing.LessonTime == lesson.LessonTime &&
			existing.IsActive() {
			return fmt.Errorf("create lesson: %w", repository.ErrDuplicate)
		}
	}
	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = lesson.CreatedAt
	f.lessons = append(f.lessons, lesson)
	return nil
}

func (f *fakeLessonStore) GetByID(_ context.Context, id uuid.UUID) (*model.Lesson, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, lesson := range f.lessons {
		if lesson.ID == id {
			return lesson, nil
		}
	}
	return nil, nil
}

func (f *fakeLessonStore) GetActiveByDate(_ context.Context, instructorID uuid.UUID, date time.Time) ([]*model.Lesson, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Lesson
	for _, lesson := range f.lessons {
		if lesson.InstructorID == instructorID && lesson.LessonDate.Equal(date) && lesson.IsActive() {
			out = append(out, lesson)
		}
	}
	return out, nil
}

func (f *fakeLessonStore) GetByStudentID(_ context.Context, studentID uuid.UUID, filter repository.LessonFilter) ([]*model.Lesson, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Lesson
	for _, lesson := range f.lessons {
		if lesson.StudentID == studentID && matchesFilter(lesson, filter) {
			out = append(out, lesson)
		}
	}
	return out, nil
}

func (f *fakeLessonStore) GetByInstructorID(_ context.Context, instructorID uuid.UUID, filter repository.LessonFilter) ([]*model.Lesson, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Lesson
	for _, lesson := range f.lessons {
		if lesson.InstructorID == instructorID && matchesFilter(lesson, filter) {
			out = append(out, lesson)
		}
	}
	return out, nil
}

func (f *fakeLessonStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.LessonStatus) error {
	if f.err != nil {
		return f.err
	}
	for _, lesson := range f.lessons {
		if lesson.ID == id {
			lesson.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func matchesFilter(lesson *model.Lesson, filter repository.LessonFilter) bool {
	if filter.Date != nil && !lesson.LessonDate.Equal(*filter.Date) {
		return false
	}
	if filter.Status != nil && lesson.Status != *filter.Status {
		return false
	}
	return true
}

type fakeStudentStore struct {
	students []*model.Student
	err      error
}

func (f *fakeStudentStore) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, student := range f.students {
		if student.UserID == userID {
			return student, nil
		}
	}
	return nil, nil
}

type fakeInstructorStore struct {
	instructors []*model.Instructor
	err         error
}

func (f *fakeInstructorStore) GetActive(_ context.Context) ([]*model.Instructor, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Instructor
	for _, instructor := range f.instructors {
		if instructor.IsActive() {
			out = append(out, instructor)
		}
	}
	return out, nil
}

func (f *fakeInstructorStore) GetByID(_ context.Context, id uuid.UUID) (*model.Instructor, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, instructor := range f.instructors {
		if instructor.ID == id {
			return instructor, nil
		}
	}
	return nil, nil
}

func (f *fakeInstructorStore) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Instructor, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, instructor := range f.instructors {
		if instructor.UserID == userID {
			return instructor, nil
		}
	}
	return nil, nil
}
