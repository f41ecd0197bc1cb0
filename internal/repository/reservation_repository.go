package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"labreserve/internal/model"
)

// userSummary limits a joined user to the {id, name} projection so that
// lab/day listings never leak email addresses.
func userSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name")
}

// ReservationRepository defines reservation persistence operations.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id uint) (*model.Reservation, error)
	FindByUser(ctx context.Context, userID uint) ([]model.Reservation, error)
	FindByLabAndDate(ctx context.Context, labID uint, date model.Date) ([]model.Reservation, error)
	FindByDate(ctx context.Context, date model.Date, userID *uint) ([]model.Reservation, error)
	List(ctx context.Context) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id uint, status model.ReservationStatus) error
	Delete(ctx context.Context, id uint) error
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ReservationRepository) error) error
	FindByLabAndDateForUpdate(ctx context.Context, labID uint, date model.Date) ([]model.Reservation, error)
}

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository.
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// Create inserts a new reservation record.
func (r *reservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// FindByID finds a reservation by ID joined with its lab and user.
func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Lab").
		Preload("User").
		First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindByUser lists a user's reservations joined with labs, ascending by
// date then time.
func (r *reservationRepository) FindByUser(ctx context.Context, userID uint) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Lab").
		Where("user_id = ?", userID).
		Order("date, time").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindByLabAndDate lists the non-cancelled, non-rejected reservations
// for a lab on a date, ascending by time, each joined with a minimal
// user summary.
func (r *reservationRepository) FindByLabAndDate(ctx context.Context, labID uint, date model.Date) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Preload("User", userSummary).
		Where("lab_id = ? AND date = ?", labID, date).
		Where("status NOT IN ?", []model.ReservationStatus{model.StatusCancelled, model.StatusRejected}).
		Order("time").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindByDate lists the non-cancelled reservations for a date across all
// labs, optionally filtered to one user, joined with labs and users.
func (r *reservationRepository) FindByDate(ctx context.Context, date model.Date, userID *uint) ([]model.Reservation, error) {
	q := r.db.WithContext(ctx).
		Preload("Lab").
		Preload("User").
		Where("date = ?", date).
		Where("status <> ?", model.StatusCancelled)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var reservations []model.Reservation
	if err := q.Order("time").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// List lists all reservations joined with labs and users, ascending by
// date then time.
func (r *reservationRepository) List(ctx context.Context) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Lab").
		Preload("User").
		Order("date, time").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// UpdateStatus sets the status of a reservation.
func (r *reservationRepository) UpdateStatus(ctx context.Context, id uint, status model.ReservationStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Reservation{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete hard-deletes a reservation.
func (r *reservationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Reservation{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// WithTransaction executes a function within a database transaction.
func (r *reservationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ReservationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &reservationRepository{db: tx}
		return fn(ctx, txRepo)
	})
}

// FindByLabAndDateForUpdate is FindByLabAndDate with row-level locks,
// for use inside the creation transaction so the availability verdict
// holds until the insert commits.
func (r *reservationRepository) FindByLabAndDateForUpdate(ctx context.Context, labID uint, date model.Date) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("User", userSummary).
		Where("lab_id = ? AND date = ?", labID, date).
		Where("status NOT IN ?", []model.ReservationStatus{model.StatusCancelled, model.StatusRejected}).
		Order("time").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}
