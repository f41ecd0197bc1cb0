package main

import (
	"context"
	"log"

	"labreserve/internal/config"
	"labreserve/internal/db"
	"labreserve/internal/model"
	"labreserve/internal/repository"
	"labreserve/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Lab{}, &model.Reservation{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	labRepo := repository.NewLabRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	seedService := service.NewSeedService(labRepo, userRepo)

	labs, users, err := seedService.Seed(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed data: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New labs created: %d", labs)
	log.Printf("  - New users created: %d", users)
}
