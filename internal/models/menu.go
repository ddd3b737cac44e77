package models

import "time"

// MenuItem and MenuModifier are a local read model of the menu catalog. Prices
// here are the "current" prices the order service snapshots from; they never
// flow back into existing orders.
type MenuItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LocationID uint      `gorm:"not null;index" json:"location_id"`
	Name       string    `gorm:"not null" json:"name"`
	PriceCents int       `gorm:"not null" json:"price_cents"`
	Available  bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type MenuModifier struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LocationID uint      `gorm:"not null;index" json:"location_id"`
	Name       string    `gorm:"not null" json:"name"`
	PriceCents int       `gorm:"not null" json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
