package routes

import (
	"nobus-loanhub/internal/adapters/http/handlers"
	"nobus-loanhub/internal/adapters/http/middleware"
	"nobus-loanhub/internal/adapters/persistence/repositories"
	"nobus-loanhub/internal/config"
	"nobus-loanhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	adminLogRepo := repositories.NewAdminLogRepository(db)

	// Initialize services
	tokenService := services.NewTokenService(cfg)
	authService := services.NewAuthService(userRepo, tokenService)
	notifyService := services.NewNotificationService(cfg.SMTP)
	loanService := services.NewLoanService(db, loanRepo, userRepo, adminLogRepo, notifyService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	loanHandler := handlers.NewLoanHandler(loanService)
	adminHandler := handlers.NewAdminHandler(loanService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Get("/me", middleware.AuthMiddleware(authService), authHandler.Me)

	// Loan routes (authenticated users)
	loanRoutes := apiV1.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(authService))
	loanRoutes.Post("/", loanHandler.Create)
	loanRoutes.Get("/", loanHandler.ListMine)
	loanRoutes.Get("/:id", loanHandler.GetByID)

	// Admin routes (staff only)
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(authService))
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Get("/loans", adminHandler.ListLoans)
	adminRoutes.Put("/loans/:id/status", adminHandler.UpdateLoanStatus)
	adminRoutes.Get("/logs", adminHandler.ListLogs)
}
