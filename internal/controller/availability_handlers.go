package controller

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/openroad/driveschool-api/internal/apperror"
	"github.com/openroad/driveschool-api/internal/auth"
	"github.com/openroad/driveschool-api/internal/model"
	"github.com/openroad/driveschool-api/internal/service"
)

// GET /api/v1/availability
func (h *Handlers) listAvailability(w http.ResponseWriter, r *http.Request) {
	rules, err := h.instructors.ListRules(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, rules)
}

// POST /api/v1/availability
func (h *Handlers) createAvailability(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeRuleRequest(w, r)
	if !ok {
		return
	}

	rule, err := h.instructors.CreateRule(r.Context(), auth.FromContext(r.Context()), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, rule)
}

// PUT /api/v1/availability/{id}
func (h *Handlers) updateAvailability(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, h.logger, apperror.Validation("invalid rule id"))
		return
	}

	input, ok := h.decodeRuleRequest(w, r)
	if !ok {
		return
	}

	rule, err := h.instructors.UpdateRule(r.Context(), auth.FromContext(r.Context()), ruleID, input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, rule)
}

// DELETE /api/v1/availability/{id}
func (h *Handlers) deleteAvailability(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, h.logger, apperror.Validation("invalid rule id"))
		return
	}

	if err := h.instructors.DeleteRule(r.Context(), auth.FromContext(r.Context()), ruleID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) decodeRuleRequest(w http.ResponseWriter, r *http.Request) (service.AvailabilityRuleInput, bool) {
	var req availabilityRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperror.Validation("invalid request body"))
		return service.AvailabilityRuleInput{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, apperror.Validationf("invalid request: %v", err))
		return service.AvailabilityRuleInput{}, false
	}

	start, err := model.ParseClockTime(req.StartTime)
	if err != nil {
		writeError(w, h.logger, apperror.Validation("start_time must be HH:MM"))
		return service.AvailabilityRuleInput{}, false
	}
	end, err := model.ParseClockTime(req.EndTime)
	if err != nil {
		writeError(w, h.logger, apperror.Validation("end_time must be HH:MM"))
		return service.AvailabilityRuleInput{}, false
	}

	return service.AvailabilityRuleInput{
		DayOfWeek:   *req.DayOfWeek,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: req.IsAvailable,
	}, true
}
