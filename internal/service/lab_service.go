package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"labreserve/internal/auth"
	"labreserve/internal/cache"
	apperrors "labreserve/internal/errors"
	"labreserve/internal/model"
	"labreserve/internal/repository"
)

const (
	labCacheTTL     = 5 * time.Minute
	labListCacheKey = "labs:all"
)

// LabInput carries the mutable fields of a lab.
type LabInput struct {
	Name        string
	Location    string
	Description string
	Capacity    int
	Available   *bool
}

// LabService handles lab operations.
type LabService interface {
	GetLab(ctx context.Context, id uint) (*model.Lab, error)
	ListLabs(ctx context.Context) ([]model.Lab, error)
	CreateLab(ctx context.Context, actor auth.Identity, in LabInput) (*model.Lab, error)
	UpdateLab(ctx context.Context, actor auth.Identity, id uint, in LabInput) (*model.Lab, error)
	DeleteLab(ctx context.Context, actor auth.Identity, id uint) error
}

type labService struct {
	repo  repository.LabRepository
	cache *cache.Client
}

// NewLabService creates a new lab service.
func NewLabService(repo repository.LabRepository, cache *cache.Client) LabService {
	return &labService{repo: repo, cache: cache}
}

func (s *labService) cacheKey(id uint) string {
	return fmt.Sprintf("lab:%d", id)
}

// GetLab retrieves a lab by ID with caching.
func (s *labService) GetLab(ctx context.Context, id uint) (*model.Lab, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Lab
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	lab, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLabNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(lab); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, labCacheTTL)
	}

	return lab, nil
}

// ListLabs lists all labs with caching.
func (s *labService) ListLabs(ctx context.Context) ([]model.Lab, error) {
	if data, _ := s.cache.Get(ctx, labListCacheKey); data != nil {
		var cached []model.Lab
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	labs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(labs); err == nil {
		_ = s.cache.Set(ctx, labListCacheKey, payload, labCacheTTL)
	}

	return labs, nil
}

// CreateLab creates a new lab; administrators only.
func (s *labService) CreateLab(ctx context.Context, actor auth.Identity, in LabInput) (*model.Lab, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if in.Name == "" || in.Location == "" || in.Capacity <= 0 {
		return nil, fmt.Errorf("%w: name, location and capacity are required", apperrors.ErrInvalidInput)
	}

	lab := &model.Lab{
		Name:        in.Name,
		Location:    in.Location,
		Description: in.Description,
		Capacity:    in.Capacity,
		Available:   true,
	}
	if in.Available != nil {
		lab.Available = *in.Available
	}

	if err := s.repo.Create(ctx, lab); err != nil {
		return nil, fmt.Errorf("create lab: %w", err)
	}

	_ = s.cache.Delete(ctx, labListCacheKey)
	return lab, nil
}

// UpdateLab updates a lab; administrators only.
func (s *labService) UpdateLab(ctx context.Context, actor auth.Identity, id uint, in LabInput) (*model.Lab, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	lab, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLabNotFound
		}
		return nil, err
	}

	if in.Name != "" {
		lab.Name = in.Name
	}
	if in.Location != "" {
		lab.Location = in.Location
	}
	if in.Description != "" {
		lab.Description = in.Description
	}
	if in.Capacity > 0 {
		lab.Capacity = in.Capacity
	}
	if in.Available != nil {
		lab.Available = *in.Available
	}

	if err := s.repo.Update(ctx, lab); err != nil {
		return nil, fmt.Errorf("update lab: %w", err)
	}

	_ = s.cache.Delete(ctx, labListCacheKey, s.cacheKey(id))
	return lab, nil
}

// DeleteLab removes a lab; administrators only. Existing reservations
// cascade away with it.
func (s *labService) DeleteLab(ctx context.Context, actor auth.Identity, id uint) error {
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrLabNotFound
		}
		return fmt.Errorf("delete lab: %w", err)
	}

	_ = s.cache.Delete(ctx, labListCacheKey, s.cacheKey(id))
	return nil
}
