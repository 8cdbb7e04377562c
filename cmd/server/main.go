package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/openroad/driveschool-api/internal/app"
	"github.com/openroad/driveschool-api/internal/config"
	"github.com/openroad/driveschool-api/internal/controller"
	"github.com/openroad/driveschool-api/internal/repository"
	"github.com/openroad/driveschool-api/internal/service"
	"github.com/openroad/driveschool-api/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to reach database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, migrations.FS)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	availabilityRepo := repository.NewAvailabilityRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	instructorRepo := repository.NewInstructorRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)

	availabilitySvc := service.NewAvailabilityService(availabilityRepo, lessonRepo, logger)
	bookingSvc := service.NewBookingService(studentRepo, instructorRepo, lessonRepo, availabilitySvc, cfg.Location(), logger)
	lessonSvc := service.NewLessonService(lessonRepo, studentRepo, instructorRepo, logger)
	instructorSvc := service.NewInstructorService(instructorRepo, availabilityRepo, logger)

	handlers := controller.NewHandlers(instructorSvc, availabilitySvc, bookingSvc, lessonSvc, logger)

	server := app.NewServer(cfg.HTTPAddr, handlers.Routes(cfg.JWTSecret), logger)

	logger.Info("Starting driveschool API",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("timezone", cfg.Timezone),
	)

	if err := server.Run(ctx); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}

	logger.Info("Server stopped")
}
