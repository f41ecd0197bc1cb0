package main

import (
	"log"
	"net/http"
	"os"

	_ "labreserve/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"labreserve/internal/auth"
	"labreserve/internal/cache"
	"labreserve/internal/config"
	"labreserve/internal/db"
	"labreserve/internal/handler"
	"labreserve/internal/model"
	"labreserve/internal/repository"
	"labreserve/internal/router"
	"labreserve/internal/service"
)

// @title Lab Reservation API
// @version 1.0
// @description Laboratory reservation API with availability checking, booking approval workflow, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Reservation{},
			&model.Lab{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Lab{},
		&model.Reservation{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	labRepo := repository.NewLabRepository(gormDB)
	reservationRepo := repository.NewReservationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	labService := service.NewLabService(labRepo, cacheClient)
	reservationService := service.NewReservationService(reservationRepo, labRepo, cacheClient, cfg.OpeningHour, cfg.ClosingHour)
	seedService := service.NewSeedService(labRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	labHandler := handler.NewLabHandler(labService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	seedHandler := handler.NewSeedHandler(seedService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		labHandler,
		reservationHandler,
		seedHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
