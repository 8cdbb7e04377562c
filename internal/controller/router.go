// Package controller is the HTTP delivery layer: routing, auth
// middleware, request decoding and the error-to-status mapping.
package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openroad/driveschool-api/internal/auth"
	"github.com/openroad/driveschool-api/internal/service"
)

type Handlers struct {
	instructors  *service.InstructorService
	availability *service.AvailabilityService
	bookings     *service.BookingService
	lessons      *service.LessonService
	validate     *validator.Validate
	logger       *zap.Logger
}

func NewHandlers(
	instructors *service.InstructorService,
	availability *service.AvailabilityService,
	bookings *service.BookingService,
	lessons *service.LessonService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		instructors:  instructors,
		availability: availability,
		bookings:     bookings,
		lessons:      lessons,
		validate:     validator.New(),
		logger:       logger,
	}
}

// Routes assembles the router. jwtSecret is the HMAC key shared with the
// identity service.
func (h *Handlers) Routes(jwtSecret string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(h.logger))
	r.Use(httprate.LimitByIP(120, time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Authenticate(jwtSecret, h.logger))

		r.Get("/instructors", h.listInstructors)
		r.Get("/instructors/{id}/slots", h.resolveSlots)

		r.Route("/lessons", func(r chi.Router) {
			r.Get("/", h.listLessons)
			r.With(RequireRole(h.logger, auth.RoleStudent)).Post("/", h.bookLesson)
			r.With(RequireRole(h.logger, auth.RoleInstructor)).Post("/{id}/confirm", h.confirmLesson)
			r.With(RequireRole(h.logger, auth.RoleInstructor)).Post("/{id}/complete", h.completeLesson)
			r.Post("/{id}/cancel", h.cancelLesson)
		})

		r.Route("/availability", func(r chi.Router) {
			r.Use(RequireRole(h.logger, auth.RoleInstructor))
			r.Get("/", h.listAvailability)
			r.Post("/", h.createAvailability)
			r.Put("/{id}", h.updateAvailability)
			r.Delete("/{id}", h.deleteAvailability)
		})
	})

	return r
}
