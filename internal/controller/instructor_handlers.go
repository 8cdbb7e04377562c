package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openroad/driveschool-api/internal/apperror"
)

// GET /api/v1/instructors
func (h *Handlers) listInstructors(w http.ResponseWriter, r *http.Request) {
	instructors, err := h.instructors.ListActive(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, instructors)
}

// GET /api/v1/instructors/{id}/slots?date=YYYY-MM-DD&duration=60
func (h *Handlers) resolveSlots(w http.ResponseWriter, r *http.Request) {
	instructorID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, apperror.Validation("invalid instructor id"))
		return
	}

	date, err := time.Parse(dateLayout, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, h.logger, apperror.Validation("date is required as YYYY-MM-DD"))
		return
	}

	duration := 0
	if raw := r.URL.Query().Get("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration < 0 {
			writeError(w, h.logger, apperror.Validation("invalid duration"))
			return
		}
	}

	slots, err := h.availability.ResolveSlots(r.Context(), instructorID, date, duration)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, slots)
}
