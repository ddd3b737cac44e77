package dto

import "time"

type CreateBookingRequest struct {
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone"`
	PartySize       int       `json:"party_size"`
	Datetime        time.Time `json:"datetime"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderLineRequest struct {
	MenuItemID  uint   `json:"menu_item_id"`
	ModifierIDs []uint `json:"modifier_ids"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes"`
}

type CreateOrderRequest struct {
	TableID      *uint              `json:"table_id"`
	Type         string             `json:"type"`
	CustomerName string             `json:"customer_name"`
	Items        []OrderLineRequest `json:"items"`
}

type CreateStationRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}
