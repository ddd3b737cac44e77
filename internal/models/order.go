package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type OrderType string

const (
	OrderDineIn   OrderType = "dine_in"
	OrderTakeaway OrderType = "takeaway"
)

func (t OrderType) Valid() bool {
	return t == OrderDineIn || t == OrderTakeaway
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderPaid      OrderStatus = "paid"
)

// Valid reports membership only. Like bookings, order transitions are
// unrestricted so staff can correct mistakes.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderServed, OrderPaid:
		return true
	}
	return false
}

type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	LocationID   uint        `gorm:"not null;index" json:"location_id"`
	TableID      *uint       `json:"table_id,omitempty"`
	Type         OrderType   `gorm:"type:varchar(20);not null" json:"type"`
	CustomerName string      `json:"customer_name,omitempty"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	// Computed once at creation from snapshotted line prices, never recomputed.
	TotalCents int       `gorm:"not null" json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// ModifierIDList is stored as a JSON array; the ids are kept for display, the
// prices they carried are already folded into UnitPriceCents.
type ModifierIDList []uint

func (m ModifierIDList) Value() (driver.Value, error) {
	if m == nil {
		m = ModifierIDList{}
	}
	return json.Marshal(m)
}

func (m *ModifierIDList) Scan(value any) error {
	if value == nil {
		*m = ModifierIDList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("unsupported modifier id list type %T", value)
}

type OrderItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderID     uint           `gorm:"not null;index" json:"order_id"`
	MenuItemID  uint           `gorm:"not null" json:"menu_item_id"`
	ModifierIDs ModifierIDList `gorm:"type:text" json:"modifier_ids"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	// Base item price plus selected modifier prices, frozen at order creation.
	UnitPriceCents int       `gorm:"not null" json:"unit_price_cents"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
