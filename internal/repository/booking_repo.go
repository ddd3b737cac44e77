package repository

import (
	"context"
	"time"

	"github.com/waitron/waitron/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, locationID, id uint) (*models.Booking, error)
	FindByLocation(ctx context.Context, locationID uint, day *time.Time) ([]models.Booking, error)
	CommittedTableIDs(ctx context.Context, tx *gorm.DB, locationID uint, start, end time.Time) ([]uint, error)
	FindActiveByDay(ctx context.Context, locationID uint, dayStart, dayEnd time.Time) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, locationID, id uint, status models.BookingStatus) error
	Delete(ctx context.Context, locationID, id uint) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

// Create inserts the booking together with its booking_tables rows; with a tx
// the assignment is atomic with the booking itself.
func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, locationID, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Tables").
		Where("id = ? AND location_id = ?", id, locationID).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByLocation(ctx context.Context, locationID uint, day *time.Time) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Where("location_id = ?", locationID)
	if day != nil {
		q = q.Where("datetime >= ? AND datetime < ?", *day, day.Add(24*time.Hour))
	}
	var bookings []models.Booking
	if err := q.Order("datetime ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// CommittedTableIDs is the conflict index: table ids held by any non-terminal
// booking whose occupancy interval intersects [start, end). Open-interval
// semantics, so a booking ending exactly at start does not conflict.
func (r *bookingRepository) CommittedTableIDs(ctx context.Context, tx *gorm.DB, locationID uint, start, end time.Time) ([]uint, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var ids []uint
	err := db.WithContext(ctx).
		Table("booking_tables").
		Distinct("booking_tables.table_id").
		Joins("JOIN bookings ON bookings.id = booking_tables.booking_id").
		Where("bookings.location_id = ?", locationID).
		Where("bookings.status NOT IN ?", []models.BookingStatus{models.BookingCancelled, models.BookingNoShow}).
		Where("bookings.datetime < ?", end).
		Where("bookings.datetime + (bookings.duration_minutes * interval '1 minute') > ?", start).
		Pluck("booking_tables.table_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FindActiveByDay returns non-terminal bookings starting within [dayStart,
// dayEnd) with their table assignments preloaded, for in-memory replay by the
// availability projector.
func (r *bookingRepository) FindActiveByDay(ctx context.Context, locationID uint, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Tables").
		Where("location_id = ?", locationID).
		Where("status NOT IN ?", []models.BookingStatus{models.BookingCancelled, models.BookingNoShow}).
		Where("datetime >= ? AND datetime < ?", dayStart, dayEnd).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, locationID, id uint, status models.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND location_id = ?", id, locationID).
		Update("status", status).Error
}

func (r *bookingRepository) Delete(ctx context.Context, locationID, id uint) error {
	return r.db.WithContext(ctx).
		Select(clause.Associations).
		Where("location_id = ?", locationID).
		Delete(&models.Booking{ID: id}).Error
}
