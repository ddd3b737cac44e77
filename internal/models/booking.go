package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingSeated    BookingStatus = "seated"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no_show"
)

// DefaultBookingDurationMinutes is applied when a create request omits the
// duration. It also sizes the occupancy window of each availability slot.
const DefaultBookingDurationMinutes = 90

// Valid reports whether s is one of the five booking statuses. Transitions are
// deliberately unrestricted beyond membership: operators correct mistakes by
// setting statuses directly.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingSeated, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

// Terminal reports whether s releases the booking's tables. Cancelled and
// no-show bookings are permanently excluded from conflict detection.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingNoShow
}

type Booking struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	LocationID      uint          `gorm:"not null;index" json:"location_id"`
	CustomerName    string        `gorm:"not null" json:"customer_name"`
	CustomerEmail   string        `json:"customer_email,omitempty"`
	CustomerPhone   string        `json:"customer_phone,omitempty"`
	PartySize       int           `gorm:"not null" json:"party_size"`
	Datetime        time.Time     `gorm:"not null;index" json:"datetime"`
	DurationMinutes int           `gorm:"not null;default:90" json:"duration_minutes"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	// Assigned at creation, immutable afterwards.
	Tables []Table `gorm:"many2many:booking_tables" json:"tables,omitempty"`
}

// End returns the exclusive end of the occupancy interval.
func (b *Booking) End() time.Time {
	return b.Datetime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}
