package main

import (
	"github.com/teamtasker/backend/internal/config"
	"github.com/teamtasker/backend/internal/handlers"
	"github.com/teamtasker/backend/internal/models"
	"github.com/teamtasker/backend/internal/services"
	"github.com/teamtasker/backend/pkg/logger"
)

// appServices holds the initialized services and handlers the router needs.
type appServices struct {
	sessionService *services.SessionService
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	teamHandler    *handlers.TeamHandler
	taskHandler    *handlers.TaskHandler
	healthHandler  *handlers.HealthHandler
}

// bootstrap initializes the database, runs migrations, and wires services.
func bootstrap(cfg *config.Config) *appServices {
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	sessionService := services.NewSessionService(db, cfg.Session.TTLHours)
	sessionService.StartCleanupScheduler()

	return &appServices{
		sessionService: sessionService,
		authHandler:    handlers.NewAuthHandler(db, sessionService, cfg),
		userHandler:    handlers.NewUserHandler(db),
		teamHandler:    handlers.NewTeamHandler(db),
		taskHandler:    handlers.NewTaskHandler(db),
		healthHandler:  handlers.NewHealthHandler(db),
	}
}

// shutdown stops background services.
func (s *appServices) shutdown() {
	s.sessionService.StopCleanupScheduler()
	logger.Info().Msg("Background services stopped")
}
