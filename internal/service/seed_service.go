package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"labreserve/internal/model"
	"labreserve/internal/repository"
)

// defaultLabs is the reference seed set.
var defaultLabs = []model.Lab{
	{Name: "Computer Lab 1", Location: "Block A, Room 101", Description: "Lab with 20 workstations", Capacity: 20, Available: true},
	{Name: "Computer Lab 2", Location: "Block A, Room 102", Description: "Lab with 25 workstations", Capacity: 25, Available: true},
	{Name: "Robotics Lab", Location: "Block B, Room 201", Description: "Lab equipped with robotics kits", Capacity: 15, Available: true},
}

const (
	seedAdminName     = "Administrator"
	seedAdminEmail    = "admin@labreserve.local"
	seedAdminPassword = "admin123"
)

// SeedService provisions the reference labs and a bootstrap admin.
type SeedService interface {
	Seed(ctx context.Context) (labs int, users int, err error)
}

type seedService struct {
	labRepo  repository.LabRepository
	userRepo repository.UserRepository
}

// NewSeedService creates a new seed service.
func NewSeedService(labRepo repository.LabRepository, userRepo repository.UserRepository) SeedService {
	return &seedService{labRepo: labRepo, userRepo: userRepo}
}

// Seed inserts the reference labs (skipping names that already exist)
// and the bootstrap admin account. It is safe to run repeatedly.
func (s *seedService) Seed(ctx context.Context) (labs int, users int, err error) {
	existing, err := s.labRepo.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list labs: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, lab := range existing {
		known[lab.Name] = true
	}

	for _, lab := range defaultLabs {
		if known[lab.Name] {
			continue
		}
		lab := lab
		if err := s.labRepo.Create(ctx, &lab); err != nil {
			return labs, users, fmt.Errorf("seed lab %s: %w", lab.Name, err)
		}
		labs++
	}

	if _, err := s.userRepo.FindByEmail(ctx, seedAdminEmail); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return labs, users, fmt.Errorf("check admin: %w", err)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcryptCost)
		if err != nil {
			return labs, users, fmt.Errorf("hash admin password: %w", err)
		}
		admin := &model.User{
			Name:         seedAdminName,
			Email:        seedAdminEmail,
			PasswordHash: string(hashed),
			Role:         model.RoleAdmin,
		}
		if err := s.userRepo.Create(ctx, admin); err != nil {
			return labs, users, fmt.Errorf("seed admin: %w", err)
		}
		users++
	}

	return labs, users, nil
}
