package models

import "time"

type TableStatus string

const (
	TableAvailable    TableStatus = "available"
	TableOccupied     TableStatus = "occupied"
	TableReserved     TableStatus = "reserved"
	TableOutOfService TableStatus = "out_of_service"
)

// Table is a physical seating resource. Status is advisory only; whether a
// table is actually busy for a given window is derived from active bookings.
type Table struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	LocationID uint        `gorm:"not null;index" json:"location_id"`
	Name       string      `gorm:"not null" json:"name"`
	Capacity   int         `gorm:"not null" json:"capacity"`
	Status     TableStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
