package main

import (
	"expedientes_app_go/config"
	"expedientes_app_go/db"
	"expedientes_app_go/handlers"
	"expedientes_app_go/middleware"
	"expedientes_app_go/models"
	"expedientes_app_go/services"
	"log"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Open database
	if err := db.Open(cfg.DBPath); err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.LawCase{},
		&models.CaseActuacion{},
		&models.CaseAlerta{},
		&models.CaseNote{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the protected admin account on an empty database
	if err := services.SeedAdminUser(db.DB, cfg); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Wire the configuration into the handlers once
	handlers.SetConfig(cfg)

	// Public routes (no authentication required)
	e.POST("/auth/login/", handlers.LoginHandler)
	e.POST("/auth/refresh/", handlers.RefreshHandler)

	// Authenticated routes
	authenticated := e.Group("")
	authenticated.Use(middleware.RequireAuth(cfg))
	{
		authenticated.GET("/auth/me/", handlers.CurrentUserHandler)
		authenticated.GET("/dashboard/", handlers.DashboardHandler)
	}

	// Standard resources: any authenticated user reads, only admins write
	standard := e.Group("")
	standard.Use(middleware.RequireAuth(cfg))
	standard.Use(middleware.RequireAdminForWrites())
	{
		standard.GET("/cases/", handlers.GetCasesHandler)
		standard.POST("/cases/", handlers.CreateCaseHandler)
		standard.GET("/cases/export/", handlers.ExportCasesHandler)
		standard.GET("/cases/:id/", handlers.GetCaseHandler)
		standard.PUT("/cases/:id/", handlers.UpdateCaseHandler)
		standard.PATCH("/cases/:id/", handlers.UpdateCaseHandler)
		standard.DELETE("/cases/:id/", handlers.DeleteCaseHandler)
		standard.POST("/cases/:id/add_actuacion/", handlers.AddActuacionHandler)
		standard.POST("/cases/:id/add_alerta/", handlers.AddAlertaHandler)
		standard.POST("/cases/:id/add_note/", handlers.AddNotaHandler)

		standard.GET("/actuaciones/", handlers.GetActuacionesHandler)
		standard.POST("/actuaciones/", handlers.CreateActuacionHandler)
		standard.GET("/actuaciones/:id/", handlers.GetActuacionHandler)
		standard.PUT("/actuaciones/:id/", handlers.UpdateActuacionHandler)
		standard.PATCH("/actuaciones/:id/", handlers.UpdateActuacionHandler)
		standard.DELETE("/actuaciones/:id/", handlers.DeleteActuacionHandler)

		standard.GET("/alertas/", handlers.GetAlertasHandler)
		standard.POST("/alertas/", handlers.CreateAlertaHandler)
		standard.GET("/alertas/:id/", handlers.GetAlertaHandler)
		standard.PUT("/alertas/:id/", handlers.UpdateAlertaHandler)
		standard.PATCH("/alertas/:id/", handlers.UpdateAlertaHandler)
		standard.DELETE("/alertas/:id/", handlers.DeleteAlertaHandler)
		standard.POST("/alertas/:id/toggle_cumplida/", handlers.ToggleCumplidaHandler)

		standard.GET("/notas/", handlers.GetNotasHandler)
		standard.POST("/notas/", handlers.CreateNotaHandler)
		standard.GET("/notas/:id/", handlers.GetNotaHandler)
		standard.PUT("/notas/:id/", handlers.UpdateNotaHandler)
		standard.PATCH("/notas/:id/", handlers.UpdateNotaHandler)
		standard.DELETE("/notas/:id/", handlers.DeleteNotaHandler)
	}

	// User management: admin only, reads included
	userRoutes := e.Group("/users")
	userRoutes.Use(middleware.RequireAuth(cfg))
	userRoutes.Use(middleware.RequireAdmin())
	{
		userRoutes.GET("/", handlers.GetUsersHandler)
		userRoutes.POST("/", handlers.CreateUserHandler)
		userRoutes.GET("/:id/", handlers.GetUserHandler)
		userRoutes.PUT("/:id/", handlers.UpdateUserHandler)
		userRoutes.PATCH("/:id/", handlers.UpdateUserHandler)
		userRoutes.DELETE("/:id/", handlers.DeleteUserHandler)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
