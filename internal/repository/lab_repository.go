package repository

import (
	"context"

	"gorm.io/gorm"

	"labreserve/internal/model"
)

// LabRepository defines lab persistence operations.
type LabRepository interface {
	Create(ctx context.Context, lab *model.Lab) error
	Update(ctx context.Context, lab *model.Lab) error
	FindByID(ctx context.Context, id uint) (*model.Lab, error)
	List(ctx context.Context) ([]model.Lab, error)
	Delete(ctx context.Context, id uint) error
}

type labRepository struct {
	db *gorm.DB
}

// NewLabRepository creates a new lab repository.
func NewLabRepository(db *gorm.DB) LabRepository {
	return &labRepository{db: db}
}

// Create creates a new lab.
func (r *labRepository) Create(ctx context.Context, lab *model.Lab) error {
	return r.db.WithContext(ctx).Create(lab).Error
}

// Update updates an existing lab.
func (r *labRepository) Update(ctx context.Context, lab *model.Lab) error {
	return r.db.WithContext(ctx).Save(lab).Error
}

// FindByID finds a lab by ID.
func (r *labRepository) FindByID(ctx context.Context, id uint) (*model.Lab, error) {
	var lab model.Lab
	if err := r.db.WithContext(ctx).First(&lab, id).Error; err != nil {
		return nil, err
	}
	return &lab, nil
}

// List lists all labs ordered by name.
func (r *labRepository) List(ctx context.Context) ([]model.Lab, error) {
	var labs []model.Lab
	if err := r.db.WithContext(ctx).Order("name").Find(&labs).Error; err != nil {
		return nil, err
	}
	return labs, nil
}

// Delete removes a lab. Reservations cascade at the database level.
func (r *labRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Lab{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
