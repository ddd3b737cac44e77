package service

import (
	"context"
	"errors"
	"time"

	"github.com/waitron/waitron/internal/models"
	"github.com/waitron/waitron/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrLocationNotFound     = errors.New("location not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrNoTablesAvailable    = errors.New("no tables available for the requested time slot and party size")
	ErrInvalidBookingStatus = errors.New("invalid booking status")
	ErrInvalidBookingInput  = errors.New("invalid booking input")
)

type CreateBookingInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	PartySize       int
	Datetime        time.Time
	DurationMinutes int // 0 means the 90-minute default
	Notes           string
}

type BookingService interface {
	CreateBooking(ctx context.Context, tenantID string, locationID uint, in CreateBookingInput) (*models.Booking, error)
	ListBookings(ctx context.Context, tenantID string, locationID uint, day *time.Time) ([]models.Booking, error)
	GetBooking(ctx context.Context, tenantID string, locationID, id uint) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, tenantID string, locationID, id uint, status models.BookingStatus) (*models.Booking, error)
	DeleteBooking(ctx context.Context, tenantID string, locationID, id uint) error
	GetAvailability(ctx context.Context, tenantID string, locationID uint, day time.Time, partySize int) ([]Slot, error)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	locationRepo repository.LocationRepository
	tableRepo    repository.TableRepository
}

func NewBookingService(bookingRepo repository.BookingRepository, locationRepo repository.LocationRepository, tableRepo repository.TableRepository) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		locationRepo: locationRepo,
		tableRepo:    tableRepo,
	}
}

// CreateBooking runs the whole check-then-commit sequence inside one
// transaction holding a lock on the location row. Two concurrent requests for
// the same location serialize on that lock, so the loser re-reads a conflict
// index that already contains the winner's tables and is rejected instead of
// co-allocating them.
func (s *bookingService) CreateBooking(ctx context.Context, tenantID string, locationID uint, in CreateBookingInput) (*models.Booking, error) {
	if in.PartySize <= 0 || in.DurationMinutes < 0 || in.Datetime.IsZero() || in.CustomerName == "" {
		return nil, ErrInvalidBookingInput
	}

	duration := in.DurationMinutes
	if duration == 0 {
		duration = models.DefaultBookingDurationMinutes
	}
	start := in.Datetime
	end := start.Add(time.Duration(duration) * time.Minute)

	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the location row, serializing concurrent booking attempts
		if _, err := s.locationRepo.FindByIDAndTenantForUpdate(ctx, tx, tenantID, locationID); err != nil {
			return ErrLocationNotFound
		}

		// 2. Conflict index over the occupancy interval
		committed, err := s.bookingRepo.CommittedTableIDs(ctx, tx, locationID, start, end)
		if err != nil {
			return err
		}

		// 3. Allocate from the free inventory
		inventory, err := s.tableRepo.FindByLocation(ctx, tx, locationID)
		if err != nil {
			return err
		}
		assigned, ok := allocateTables(excludeTables(inventory, committed), in.PartySize)
		if !ok {
			return ErrNoTablesAvailable
		}

		// 4. Persist booking + assignments as one atomic unit
		booking := &models.Booking{
			LocationID:      locationID,
			CustomerName:    in.CustomerName,
			CustomerEmail:   in.CustomerEmail,
			CustomerPhone:   in.CustomerPhone,
			PartySize:       in.PartySize,
			Datetime:        start,
			DurationMinutes: duration,
			Status:          models.BookingPending,
			Notes:           in.Notes,
			Tables:          assigned,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}
		result = booking
		return nil
	})

	return result, err
}

func (s *bookingService) ListBookings(ctx context.Context, tenantID string, locationID uint, day *time.Time) ([]models.Booking, error) {
	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return nil, ErrLocationNotFound
	}
	return s.bookingRepo.FindByLocation(ctx, locationID, day)
}

func (s *bookingService) GetBooking(ctx context.Context, tenantID string, locationID, id uint) (*models.Booking, error) {
	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return nil, ErrLocationNotFound
	}
	booking, err := s.bookingRepo.FindByID(ctx, locationID, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// UpdateBookingStatus accepts any of the five statuses from any current
// status. Setting cancelled or no_show is the only way table capacity is
// released early: the conflict index skips terminal bookings from then on.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, tenantID string, locationID, id uint, status models.BookingStatus) (*models.Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidBookingStatus
	}
	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return nil, ErrLocationNotFound
	}
	if _, err := s.bookingRepo.FindByID(ctx, locationID, id); err != nil {
		return nil, ErrBookingNotFound
	}
	if err := s.bookingRepo.UpdateStatus(ctx, locationID, id, status); err != nil {
		return nil, err
	}
	return s.bookingRepo.FindByID(ctx, locationID, id)
}

func (s *bookingService) DeleteBooking(ctx context.Context, tenantID string, locationID, id uint) error {
	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return ErrLocationNotFound
	}
	if _, err := s.bookingRepo.FindByID(ctx, locationID, id); err != nil {
		return ErrBookingNotFound
	}
	return s.bookingRepo.Delete(ctx, locationID, id)
}

// GetAvailability is a read-only projection: the day's active bookings and
// their assignments are fetched once and replayed across the slot grid in
// memory. No holds are taken; races are settled by CreateBooking.
func (s *bookingService) GetAvailability(ctx context.Context, tenantID string, locationID uint, day time.Time, partySize int) ([]Slot, error) {
	if partySize <= 0 {
		return nil, ErrInvalidBookingInput
	}
	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return nil, ErrLocationNotFound
	}

	tables, err := s.tableRepo.FindByLocation(ctx, nil, locationID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	bookings, err := s.bookingRepo.FindActiveByDay(ctx, locationID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	return projectAvailability(tables, bookings, dayStart, partySize), nil
}
