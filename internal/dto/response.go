package dto

import (
	"time"

	"github.com/waitron/waitron/internal/models"
)

type TableResponse struct {
	ID       uint               `json:"id"`
	Name     string             `json:"name"`
	Capacity int                `json:"capacity"`
	Status   models.TableStatus `json:"status"`
}

type BookingResponse struct {
	ID              uint                 `json:"id"`
	LocationID      uint                 `json:"location_id"`
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   string               `json:"customer_email,omitempty"`
	CustomerPhone   string               `json:"customer_phone,omitempty"`
	PartySize       int                  `json:"party_size"`
	Datetime        time.Time            `json:"datetime"`
	DurationMinutes int                  `json:"duration_minutes"`
	Status          models.BookingStatus `json:"status"`
	Notes           string               `json:"notes,omitempty"`
	Tables          []TableResponse      `json:"tables,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

type SlotResponse struct {
	Time      time.Time `json:"time"`
	Available bool      `json:"available"`
}

type OrderItemResponse struct {
	ID             uint   `json:"id"`
	MenuItemID     uint   `json:"menu_item_id"`
	ModifierIDs    []uint `json:"modifier_ids"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int    `json:"unit_price_cents"`
	Notes          string `json:"notes,omitempty"`
}

type OrderResponse struct {
	ID           uint                `json:"id"`
	LocationID   uint                `json:"location_id"`
	TableID      *uint               `json:"table_id,omitempty"`
	Type         models.OrderType    `json:"type"`
	CustomerName string              `json:"customer_name,omitempty"`
	Status       models.OrderStatus  `json:"status"`
	TotalCents   int                 `json:"total_cents"`
	Items        []OrderItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

type StationResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type TicketResponse struct {
	ID          uint                `json:"id"`
	OrderID     uint                `json:"order_id"`
	StationID   uint                `json:"station_id"`
	Status      models.TicketStatus `json:"status"`
	Priority    int                 `json:"priority"`
	StartedAt   *time.Time          `json:"started_at,omitempty"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToTableResponse(t *models.Table) TableResponse {
	return TableResponse{
		ID:       t.ID,
		Name:     t.Name,
		Capacity: t.Capacity,
		Status:   t.Status,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID,
		LocationID:      b.LocationID,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		PartySize:       b.PartySize,
		Datetime:        b.Datetime,
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
	}
	for i := range b.Tables {
		resp.Tables = append(resp.Tables, ToTableResponse(&b.Tables[i]))
	}
	return resp
}

func ToOrderResponse(o *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID,
		LocationID:   o.LocationID,
		TableID:      o.TableID,
		Type:         o.Type,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		TotalCents:   o.TotalCents,
		CreatedAt:    o.CreatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:             item.ID,
			MenuItemID:     item.MenuItemID,
			ModifierIDs:    item.ModifierIDs,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			Notes:          item.Notes,
		})
	}
	return resp
}

func ToStationResponse(s *models.KitchenStation) StationResponse {
	return StationResponse{ID: s.ID, Name: s.Name, SortOrder: s.SortOrder}
}

func ToTicketResponse(t *models.KitchenTicket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		OrderID:     t.OrderID,
		StationID:   t.StationID,
		Status:      t.Status,
		Priority:    t.Priority,
		StartedAt:   t.StartedAt,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
	}
}
