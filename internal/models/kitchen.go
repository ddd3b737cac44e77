package models

import "time"

// KitchenStation is a routing destination for order line items.
type KitchenStation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LocationID uint      `gorm:"not null;index" json:"location_id"`
	Name       string    `gorm:"not null" json:"name"`
	SortOrder  int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MenuItemStation assigns a menu item to the station that prepares it.
// Configured ahead of time; items without a row here never reach the kitchen.
type MenuItemStation struct {
	MenuItemID uint `gorm:"primaryKey" json:"menu_item_id"`
	StationID  uint `gorm:"primaryKey" json:"station_id"`
}

type TicketStatus string

const (
	TicketPending    TicketStatus = "pending"
	TicketInProgress TicketStatus = "in_progress"
	TicketReady      TicketStatus = "ready"
	TicketBumped     TicketStatus = "bumped"
)

var ticketStatusRank = map[TicketStatus]int{
	TicketPending:    0,
	TicketInProgress: 1,
	TicketReady:      2,
	TicketBumped:     3,
}

func (s TicketStatus) Valid() bool {
	_, ok := ticketStatusRank[s]
	return ok
}

// CanTransitionTo enforces forward-only progression. Skipping steps is
// allowed, moving backwards is not; repeating the current status is treated
// as an idempotent re-stamp.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	return ticketStatusRank[next] >= ticketStatusRank[s]
}

// Complete reports whether the ticket no longer needs kitchen work.
func (s TicketStatus) Complete() bool {
	return s == TicketReady || s == TicketBumped
}

// KitchenTicket is one station's share of one order, created in a batch when
// the order is confirmed.
type KitchenTicket struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	OrderID     uint         `gorm:"not null;index" json:"order_id"`
	StationID   uint         `gorm:"not null;index" json:"station_id"`
	Status      TicketStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Priority    int          `gorm:"not null;default:0" json:"priority"`
	StartedAt   *time.Time   `json:"started_at,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
