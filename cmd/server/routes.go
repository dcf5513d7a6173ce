package main

import (
	"github.com/gin-gonic/gin"

	"github.com/teamtasker/backend/internal/config"
	"github.com/teamtasker/backend/internal/middleware"
	"github.com/teamtasker/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(cfg.CORS.Origin))

	// Health check (also exposed under /api for deployments that only
	// forward the API prefix)
	r.GET("/health", svc.healthHandler.Check)

	api := r.Group("/api")
	{
		api.GET("/health", svc.healthHandler.Check)

		// Auth routes (public; logout is deliberately unauthenticated so
		// repeating it with a dead session still succeeds)
		auth := api.Group("/auth")
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/logout", svc.authHandler.Logout)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(svc.sessionService, cfg.Session.CookieName))
		{
			// Profile
			protected.GET("/users/profile", svc.userHandler.GetProfile)
			protected.PUT("/users/profile", svc.userHandler.UpdateProfile)

			// Teams
			protected.GET("/teams", svc.teamHandler.List)
			protected.GET("/teams/:id", svc.teamHandler.Get)
			protected.POST("/teams", svc.teamHandler.Create)
			protected.POST("/teams/:id/members", svc.teamHandler.AddMember)
			protected.DELETE("/teams/:id/members/:userId", svc.teamHandler.RemoveMember)
			protected.DELETE("/teams/:id", svc.teamHandler.Delete)

			// Tasks
			protected.GET("/tasks", svc.taskHandler.List)
			protected.GET("/tasks/:id", svc.taskHandler.Get)
			protected.POST("/tasks", svc.taskHandler.Create)
			protected.PUT("/tasks/:id", svc.taskHandler.Update)
			protected.DELETE("/tasks/:id", svc.taskHandler.Delete)
		}
	}
}
