package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"labreserve/internal/auth"
	"labreserve/internal/cache"
	apperrors "labreserve/internal/errors"
	"labreserve/internal/model"
	"labreserve/internal/repository"
	"labreserve/internal/schedule"
)

const dayScheduleCacheTTL = 30 * time.Second

// CreateReservationInput carries the client-supplied fields of a new
// reservation. The owning user always comes from the caller identity.
type CreateReservationInput struct {
	LabID    uint
	Date     model.Date
	Time     string
	Duration int
}

// ReservationService handles reservation operations and enforces the
// availability gate and the status machine.
type ReservationService interface {
	Create(ctx context.Context, actor auth.Identity, in CreateReservationInput) (*model.Reservation, error)
	GetByID(ctx context.Context, actor auth.Identity, id uint) (*model.Reservation, error)
	GetByUser(ctx context.Context, actor auth.Identity, userID uint) ([]model.Reservation, error)
	GetByLabAndDate(ctx context.Context, labID uint, date model.Date) ([]model.Reservation, error)
	GetDaily(ctx context.Context, actor auth.Identity, date model.Date) ([]model.Reservation, error)
	List(ctx context.Context, actor auth.Identity) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, actor auth.Identity, id uint, status string) (*model.Reservation, error)
	Delete(ctx context.Context, actor auth.Identity, id uint) error
	SlotGrid(ctx context.Context, labID uint, date model.Date, clock string, duration int) ([]schedule.Slot, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	labRepo         repository.LabRepository
	cache           *cache.Client
	openingHour     int
	closingHour     int
	// Mutex map for per lab+date locking around check-then-insert.
	dayMutexes sync.Map
}

// NewReservationService creates a new reservation service.
func NewReservationService(
	reservationRepo repository.ReservationRepository,
	labRepo repository.LabRepository,
	cache *cache.Client,
	openingHour, closingHour int,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		labRepo:         labRepo,
		cache:           cache,
		openingHour:     openingHour,
		closingHour:     closingHour,
	}
}

// getMutex returns a mutex for a specific lab and date.
func (s *reservationService) getMutex(labID uint, date model.Date) *sync.Mutex {
	key := fmt.Sprintf("%d:%s", labID, date)
	value, _ := s.dayMutexes.LoadOrStore(key, &sync.Mutex{})
	return value.(*sync.Mutex)
}

func (s *reservationService) dayCacheKey(labID uint, date model.Date) string {
	return fmt.Sprintf("reservations:lab:%d:date:%s", labID, date)
}

// Create validates the request, runs the availability check and the
// insert inside one locked transaction, and returns the persisted
// record joined with its lab and user. The in-transaction verdict is
// authoritative: two racing requests for overlapping windows serialize
// on the row locks and the second one fails with the conflict list.
func (s *reservationService) Create(ctx context.Context, actor auth.Identity, in CreateReservationInput) (*model.Reservation, error) {
	if in.LabID == 0 || in.Date.IsZero() || in.Time == "" || in.Duration == 0 {
		return nil, fmt.Errorf("%w: lab_id, date, time and duration are required", apperrors.ErrInvalidInput)
	}

	candidate, err := schedule.NewInterval(in.Time, in.Duration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	lab, err := s.labRepo.FindByID(ctx, in.LabID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLabNotFound
		}
		return nil, fmt.Errorf("find lab: %w", err)
	}
	if !lab.Available {
		return nil, apperrors.ErrLabUnavailable
	}

	mutex := s.getMutex(in.LabID, in.Date)
	mutex.Lock()
	defer mutex.Unlock()

	reservation := &model.Reservation{
		LabID:    in.LabID,
		UserID:   actor.UserID,
		Date:     in.Date,
		Time:     schedule.FormatClock(candidate.Start),
		Duration: in.Duration,
		Status:   model.StatusPending,
	}

	err = s.reservationRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.ReservationRepository) error {
		existing, err := txRepo.FindByLabAndDateForUpdate(ctx, in.LabID, in.Date)
		if err != nil {
			return fmt.Errorf("load day schedule: %w", err)
		}

		availability := schedule.CheckAvailability(candidate, existing)
		if !availability.Available {
			return &apperrors.ConflictError{Conflicts: availability.Conflicts}
		}

		return txRepo.Create(ctx, reservation)
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.dayCacheKey(in.LabID, in.Date))

	return s.reservationRepo.FindByID(ctx, reservation.ID)
}

// GetByID returns a reservation; owner or administrator only.
func (s *reservationService) GetByID(ctx context.Context, actor auth.Identity, id uint) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && !actor.Owns(reservation.UserID) {
		return nil, apperrors.ErrForbidden
	}
	return reservation, nil
}

// GetByUser lists a user's reservations; the user themselves or an
// administrator.
func (s *reservationService) GetByUser(ctx context.Context, actor auth.Identity, userID uint) ([]model.Reservation, error) {
	if !actor.IsAdmin() && !actor.Owns(userID) {
		return nil, apperrors.ErrForbidden
	}
	return s.reservationRepo.FindByUser(ctx, userID)
}

// GetByLabAndDate lists the active schedule of a lab for one date. The
// result backs both the reservation listing endpoint and the client
// slot calendar, so it is cached briefly and invalidated on every
// mutation of that day.
func (s *reservationService) GetByLabAndDate(ctx context.Context, labID uint, date model.Date) ([]model.Reservation, error) {
	key := s.dayCacheKey(labID, date)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Reservation
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	reservations, err := s.reservationRepo.FindByLabAndDate(ctx, labID, date)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(reservations); err == nil {
		_ = s.cache.Set(ctx, key, payload, dayScheduleCacheTTL)
	}

	return reservations, nil
}

// GetDaily lists reservations for one date across labs: administrators
// see everyone's, faculty only their own. Cancelled records are
// excluded from the view.
func (s *reservationService) GetDaily(ctx context.Context, actor auth.Identity, date model.Date) ([]model.Reservation, error) {
	if actor.IsAdmin() {
		return s.reservationRepo.FindByDate(ctx, date, nil)
	}
	userID := actor.UserID
	return s.reservationRepo.FindByDate(ctx, date, &userID)
}

// List lists every reservation; administrators only.
func (s *reservationService) List(ctx context.Context, actor auth.Identity) ([]model.Reservation, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.reservationRepo.List(ctx)
}

// UpdateStatus applies a status transition. Administrators may apply
// any transition the table permits; owners may only cancel. REJECTED
// and CANCELLED are terminal.
func (s *reservationService) UpdateStatus(ctx context.Context, actor auth.Identity, id uint, status string) (*model.Reservation, error) {
	next, err := model.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidStatus, err)
	}

	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}

	switch {
	case actor.IsAdmin():
		// Any transition the table allows.
	case actor.Owns(reservation.UserID) && next == model.StatusCancelled:
		// Owners may cancel their own reservations.
	default:
		return nil, apperrors.ErrForbidden
	}

	if !reservation.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, reservation.Status, next)
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, fmt.Errorf("update status: %w", err)
	}

	_ = s.cache.Delete(ctx, s.dayCacheKey(reservation.LabID, reservation.Date))

	return s.reservationRepo.FindByID(ctx, id)
}

// Delete hard-deletes a reservation; owner or administrator, any status.
func (s *reservationService) Delete(ctx context.Context, actor auth.Identity, id uint) error {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrReservationNotFound
		}
		return err
	}
	if !actor.IsAdmin() && !actor.Owns(reservation.UserID) {
		return apperrors.ErrForbidden
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrReservationNotFound
		}
		return fmt.Errorf("delete reservation: %w", err)
	}

	_ = s.cache.Delete(ctx, s.dayCacheKey(reservation.LabID, reservation.Date))
	return nil
}

// SlotGrid projects the day schedule of a lab onto the display slot
// grid. When clock and duration describe a candidate selection, slots
// that overlap it come back selected or conflicting.
func (s *reservationService) SlotGrid(ctx context.Context, labID uint, date model.Date, clock string, duration int) ([]schedule.Slot, error) {
	var candidate *schedule.Interval
	if clock != "" && duration > 0 {
		iv, err := schedule.NewInterval(clock, duration)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		candidate = &iv
	}

	reservations, err := s.GetByLabAndDate(ctx, labID, date)
	if err != nil {
		return nil, err
	}

	return schedule.BuildSlotGrid(s.openingHour, s.closingHour, reservations, candidate), nil
}
