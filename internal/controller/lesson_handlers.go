package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/openroad/driveschool-api/internal/apperror"
	"github.com/openroad/driveschool-api/internal/auth"
	"github.com/openroad/driveschool-api/internal/model"
	"github.com/openroad/driveschool-api/internal/repository"
	"github.com/openroad/driveschool-api/internal/service"
)

// POST /api/v1/lessons
func (h *Handlers) bookLesson(w http.ResponseWriter, r *http.Request) {
	var req bookLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperror.Validation("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, apperror.Validationf("invalid request: %v", err))
		return
	}

	lessonTime, err := model.ParseClockTime(req.LessonTime)
	if err != nil {
		writeError(w, h.logger, apperror.Validation("lesson_time must be HH:MM"))
		return
	}
	// Validated by tags above; parse cannot fail here.
	instructorID, _ := uuid.Parse(req.InstructorID)
	lessonDate, _ := time.Parse(dateLayout, req.LessonDate)

	lesson, err := h.bookings.BookLesson(r.Context(), auth.FromContext(r.Context()), service.BookLessonInput{
		InstructorID:    instructorID,
		LessonDate:      lessonDate,
		LessonTime:      lessonTime,
		LessonType:      req.LessonType,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, toLessonResponse(lesson))
}

// GET /api/v1/lessons?date=YYYY-MM-DD&status=scheduled
func (h *Handlers) listLessons(w http.ResponseWriter, r *http.Request) {
	var filter repository.LessonFilter

	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(w, h.logger, apperror.Validation("date must be YYYY-MM-DD"))
			return
		}
		filter.Date = &date
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := model.LessonStatus(raw)
		switch status {
		case model.LessonStatusScheduled, model.LessonStatusConfirmed, model.LessonStatusCompleted, model.LessonStatusCancelled:
			filter.Status = &status
		default:
			writeError(w, h.logger, apperror.Validation("unknown lesson status"))
			return
		}
	}

	lessons, err := h.lessons.ListForCaller(r.Context(), auth.FromContext(r.Context()), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toLessonResponses(lessons))
}

// POST /api/v1/lessons/{id}/confirm
func (h *Handlers) confirmLesson(w http.ResponseWriter, r *http.Request) {
	h.transitionLesson(w, r, h.lessons.Confirm)
}

// POST /api/v1/lessons/{id}/complete
func (h *Handlers) completeLesson(w http.ResponseWriter, r *http.Request) {
	h.transitionLesson(w, r, h.lessons.Complete)
}

// POST /api/v1/lessons/{id}/cancel
func (h *Handlers) cancelLesson(w http.ResponseWriter, r *http.Request) {
	h.transitionLesson(w, r, h.lessons.Cancel)
}

type lessonTransition func(ctx context.Context, sess *auth.Session, lessonID uuid.UUID) (*model.Lesson, error)

func (h *Handlers) transitionLesson(w http.ResponseWriter, r *http.Request, transition lessonTransition) {
	lessonID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, apperror.Validation("invalid lesson id"))
		return
	}

	lesson, err := transition(r.Context(), auth.FromContext(r.Context()), lessonID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toLessonResponse(lesson))
}
