package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/waitron/waitron/internal/models"
	"github.com/waitron/waitron/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidOrderInput  = errors.New("invalid order input")
)

type OrderLineInput struct {
	MenuItemID  uint
	ModifierIDs []uint
	Quantity    int
	Notes       string
}

type CreateOrderInput struct {
	TableID      *uint
	Type         models.OrderType
	CustomerName string
	Items        []OrderLineInput
}

// TicketRouter is the kitchen-side hook fired when an order is confirmed.
// Implemented by KitchenService.
type TicketRouter interface {
	RouteOrder(ctx context.Context, orderID uint) ([]models.KitchenTicket, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, tenantID string, locationID uint, in CreateOrderInput) (*models.Order, error)
	ListOrders(ctx context.Context, tenantID string, locationID uint, status *models.OrderStatus) ([]models.Order, error)
	GetOrder(ctx context.Context, tenantID string, locationID, id uint) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, tenantID string, locationID, id uint, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	menuRepo     repository.MenuRepository
	locationRepo repository.LocationRepository
	router       TicketRouter
	publisher    EventPublisher
}

func NewOrderService(orderRepo repository.OrderRepository, menuRepo repository.MenuRepository, locationRepo repository.LocationRepository, router TicketRouter, publisher EventPublisher) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		menuRepo:     menuRepo,
		locationRepo: locationRepo,
		router:       router,
		publisher:    publisher,
	}
}

// priceOrderLines resolves every line against the current catalog and freezes
// unit prices: item price plus the sum of its selected modifier prices. A line
// whose menu item is missing fails the whole order; a missing modifier simply
// contributes nothing, matching how the catalog treats stale modifier ids.
func priceOrderLines(lines []OrderLineInput, items map[uint]models.MenuItem, modifiers map[uint]models.MenuModifier) ([]models.OrderItem, int, error) {
	var orderItems []models.OrderItem
	totalCents := 0

	for _, line := range lines {
		item, ok := items[line.MenuItemID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %d", ErrMenuItemNotFound, line.MenuItemID)
		}

		unitPriceCents := item.PriceCents
		for _, mid := range line.ModifierIDs {
			if mod, ok := modifiers[mid]; ok {
				unitPriceCents += mod.PriceCents
			}
		}
		totalCents += unitPriceCents * line.Quantity

		modifierIDs := line.ModifierIDs
		if modifierIDs == nil {
			modifierIDs = []uint{}
		}
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID:     line.MenuItemID,
			ModifierIDs:    models.ModifierIDList(modifierIDs),
			Quantity:       line.Quantity,
			UnitPriceCents: unitPriceCents,
			Notes:          line.Notes,
		})
	}
	return orderItems, totalCents, nil
}

func (s *orderService) CreateOrder(ctx context.Context, tenantID string, locationID uint, in CreateOrderInput) (*models.Order, error) {
	if !in.Type.Valid() || len(in.Items) == 0 {
		return nil, ErrInvalidOrderInput
	}
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, ErrInvalidOrderInput
		}
	}

	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return nil, ErrLocationNotFound
	}

	itemIDs := make([]uint, 0, len(in.Items))
	var modifierIDs []uint
	for _, line := range in.Items {
		itemIDs = append(itemIDs, line.MenuItemID)
		modifierIDs = append(modifierIDs, line.ModifierIDs...)
	}

	fetchedItems, err := s.menuRepo.FindItemsByIDs(ctx, locationID, itemIDs)
	if err != nil {
		return nil, err
	}
	fetchedModifiers, err := s.menuRepo.FindModifiersByIDs(ctx, modifierIDs)
	if err != nil {
		return nil, err
	}

	itemMap := make(map[uint]models.MenuItem, len(fetchedItems))
	for _, it := range fetchedItems {
		itemMap[it.ID] = it
	}
	modifierMap := make(map[uint]models.MenuModifier, len(fetchedModifiers))
	for _, m := range fetchedModifiers {
		modifierMap[m.ID] = m
	}

	orderItems, totalCents, err := priceOrderLines(in.Items, itemMap, modifierMap)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		LocationID:   locationID,
		TableID:      in.TableID,
		Type:         in.Type,
		CustomerName: in.CustomerName,
		Status:       models.OrderPending,
		TotalCents:   totalCents,
		Items:        orderItems,
	}

	err = s.orderRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(EventOrderCreated, order)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, tenantID string, locationID uint, status *models.OrderStatus) ([]models.Order, error) {
	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return nil, ErrLocationNotFound
	}
	return s.orderRepo.FindByLocation(ctx, locationID, status)
}

func (s *orderService) GetOrder(ctx context.Context, tenantID string, locationID, id uint) (*models.Order, error) {
	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return nil, ErrLocationNotFound
	}
	order, err := s.orderRepo.FindByID(ctx, locationID, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateOrderStatus accepts any of the six statuses. Confirming an order fans
// its line items out to kitchen tickets; the router guards itself against a
// confirmation arriving twice.
func (s *orderService) UpdateOrderStatus(ctx context.Context, tenantID string, locationID, id uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidOrderStatus
	}
	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return nil, ErrLocationNotFound
	}
	if _, err := s.orderRepo.FindByID(ctx, locationID, id); err != nil {
		return nil, ErrOrderNotFound
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if status == models.OrderConfirmed && s.router != nil {
		if _, err := s.router.RouteOrder(ctx, id); err != nil {
			// Ticket creation failing must not roll back the confirmation;
			// the kitchen can re-route from the order screen.
			log.Printf("[Orders] failed to route order %d to kitchen: %v", id, err)
		}
	}

	order, err := s.orderRepo.FindByID(ctx, locationID, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(EventOrderUpdated, order)
	}
	return order, nil
}
