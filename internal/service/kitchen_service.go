package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/waitron/waitron/internal/models"
	"github.com/waitron/waitron/internal/repository"
	"github.com/waitron/waitron/pkg/idempotency"
	"gorm.io/gorm"
)

var (
	ErrStationNotFound        = errors.New("station not found")
	ErrTicketNotFound         = errors.New("ticket not found")
	ErrInvalidTicketStatus    = errors.New("invalid ticket status")
	ErrTicketStatusRegression = errors.New("ticket status cannot move backwards")
	ErrInvalidStationInput    = errors.New("invalid station input")
)

type KitchenService interface {
	CreateStation(ctx context.Context, tenantID string, locationID uint, name string, sortOrder int) (*models.KitchenStation, error)
	ListStations(ctx context.Context, tenantID string, locationID uint) ([]models.KitchenStation, error)
	DeleteStation(ctx context.Context, tenantID string, locationID, id uint) error
	AssignItemToStation(ctx context.Context, tenantID string, locationID, stationID, menuItemID uint) error
	RouteOrder(ctx context.Context, orderID uint) ([]models.KitchenTicket, error)
	ListTickets(ctx context.Context, tenantID string, locationID uint, stationID *uint, status *models.TicketStatus) ([]models.KitchenTicket, error)
	UpdateTicketStatus(ctx context.Context, tenantID string, locationID, ticketID uint, status models.TicketStatus) (*models.KitchenTicket, error)
}

// ticketGuard is the claim-check surface of the idempotency store.
type ticketGuard interface {
	Claimed(ctx context.Context, key string) (bool, error)
	Claim(ctx context.Context, key string) error
}

type kitchenService struct {
	kitchenRepo  repository.KitchenRepository
	orderRepo    repository.OrderRepository
	menuRepo     repository.MenuRepository
	locationRepo repository.LocationRepository
	idem         ticketGuard
	publisher    EventPublisher
}

func NewKitchenService(kitchenRepo repository.KitchenRepository, orderRepo repository.OrderRepository, menuRepo repository.MenuRepository, locationRepo repository.LocationRepository, idem *idempotency.Store, publisher EventPublisher) KitchenService {
	s := &kitchenService{
		kitchenRepo:  kitchenRepo,
		orderRepo:    orderRepo,
		menuRepo:     menuRepo,
		locationRepo: locationRepo,
		publisher:    publisher,
	}
	if idem != nil {
		s.idem = idem
	}
	return s
}

// --- Stations ---

func (s *kitchenService) CreateStation(ctx context.Context, tenantID string, locationID uint, name string, sortOrder int) (*models.KitchenStation, error) {
	if name == "" {
		return nil, ErrInvalidStationInput
	}
	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return nil, ErrLocationNotFound
	}
	station := &models.KitchenStation{LocationID: locationID, Name: name, SortOrder: sortOrder}
	if err := s.kitchenRepo.CreateStation(ctx, station); err != nil {
		return nil, err
	}
	return station, nil
}

func (s *kitchenService) ListStations(ctx context.Context, tenantID string, locationID uint) ([]models.KitchenStation, error) {
	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return nil, ErrLocationNotFound
	}
	return s.kitchenRepo.FindStations(ctx, locationID)
}

func (s *kitchenService) DeleteStation(ctx context.Context, tenantID string, locationID, id uint) error {
	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return ErrLocationNotFound
	}
	if _, err := s.kitchenRepo.FindStationByID(ctx, locationID, id); err != nil {
		return ErrStationNotFound
	}
	return s.kitchenRepo.DeleteStation(ctx, id)
}

func (s *kitchenService) AssignItemToStation(ctx context.Context, tenantID string, locationID, stationID, menuItemID uint) error {
	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return ErrLocationNotFound
	}
	if _, err := s.kitchenRepo.FindStationByID(ctx, locationID, stationID); err != nil {
		return ErrStationNotFound
	}
	return s.menuRepo.AssignItemToStation(ctx, menuItemID, stationID)
}

// --- Ticket routing ---

// planTickets computes the distinct stations an order's line items route to
// and counts lines whose menu item has no station assignment. Those lines
// need no kitchen work (a bottled drink, say) and are dropped from routing;
// the count is surfaced so a misconfigured menu shows up in logs rather than
// as silently missing food.
func planTickets(items []models.OrderItem, assignments []models.MenuItemStation) (stationIDs []uint, dropped int) {
	routed := make(map[uint][]uint) // menu item id → station ids
	for _, a := range assignments {
		routed[a.MenuItemID] = append(routed[a.MenuItemID], a.StationID)
	}

	seen := make(map[uint]struct{})
	for _, item := range items {
		stations, ok := routed[item.MenuItemID]
		if !ok {
			dropped++
			continue
		}
		for _, sid := range stations {
			if _, dup := seen[sid]; !dup {
				seen[sid] = struct{}{}
				stationIDs = append(stationIDs, sid)
			}
		}
	}
	return stationIDs, dropped
}

// RouteOrder fans the order out to one pending ticket per destination
// station. The routing itself is not idempotent, so it is wrapped twice: a
// redis key per order id when a store is configured, and always a
// tickets-already-exist check under the locked order row inside the insert
// transaction. A duplicate confirmation therefore creates nothing.
func (s *kitchenService) RouteOrder(ctx context.Context, orderID uint) ([]models.KitchenTicket, error) {
	key := idempotency.OrderTicketsKey(orderID)
	if s.idem != nil {
		claimed, err := s.idem.Claimed(ctx, key)
		if err != nil {
			// Redis being down must not block the kitchen; the DB check
			// below still prevents duplicates.
			log.Printf("[Kitchen] idempotency store unavailable: %v", err)
		} else if claimed {
			return nil, nil
		}
	}

	var created []models.KitchenTicket

	err := s.kitchenRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.orderRepo.FindByIDForUpdate(ctx, tx, orderID); err != nil {
			return err
		}
		count, err := s.kitchenRepo.CountTicketsByOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		items, err := s.orderRepo.FindItems(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		itemIDs := make([]uint, 0, len(items))
		for _, item := range items {
			itemIDs = append(itemIDs, item.MenuItemID)
		}
		assignments, err := s.menuRepo.FindItemStations(ctx, tx, itemIDs)
		if err != nil {
			return err
		}

		stationIDs, dropped := planTickets(items, assignments)
		if dropped > 0 {
			log.Printf("[Kitchen] order %d: %d line item(s) without station assignment skipped", orderID, dropped)
		}
		if len(stationIDs) == 0 {
			return nil
		}

		tickets := make([]models.KitchenTicket, 0, len(stationIDs))
		for _, sid := range stationIDs {
			tickets = append(tickets, models.KitchenTicket{
				OrderID:   orderID,
				StationID: sid,
				Status:    models.TicketPending,
			})
		}
		if err := s.kitchenRepo.CreateTickets(ctx, tx, tickets); err != nil {
			return err
		}
		created = tickets
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The key is claimed only after the insert commits; a failed attempt
	// leaves it free so a retried confirmation can route again.
	if s.idem != nil {
		if err := s.idem.Claim(ctx, key); err != nil {
			log.Printf("[Kitchen] idempotency claim for order %d failed: %v", orderID, err)
		}
	}

	if s.publisher != nil {
		for i := range created {
			_ = s.publisher.Publish(EventTicketCreated, &created[i])
		}
	}
	return created, nil
}

// --- Ticket lifecycle ---

func (s *kitchenService) ListTickets(ctx context.Context, tenantID string, locationID uint, stationID *uint, status *models.TicketStatus) ([]models.KitchenTicket, error) {
	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return nil, ErrLocationNotFound
	}

	stations, err := s.kitchenRepo.FindStations(ctx, locationID)
	if err != nil {
		return nil, err
	}
	stationIDs := make([]uint, 0, len(stations))
	for _, st := range stations {
		if stationID == nil || st.ID == *stationID {
			stationIDs = append(stationIDs, st.ID)
		}
	}
	return s.kitchenRepo.FindTicketsByStations(ctx, stationIDs, status)
}

// UpdateTicketStatus moves a ticket forward, stamping StartedAt on entering
// in_progress and CompletedAt on entering ready or bumped. Reaching a
// complete status triggers the order completion check.
func (s *kitchenService) UpdateTicketStatus(ctx context.Context, tenantID string, locationID, ticketID uint, status models.TicketStatus) (*models.KitchenTicket, error) {
	if !status.Valid() {
		return nil, ErrInvalidTicketStatus
	}
	if _, err := s.locationRepo.FindByIDAndTenant(ctx, tenantID, locationID); err != nil {
		return nil, ErrLocationNotFound
	}

	ticket, err := s.kitchenRepo.FindTicketByID(ctx, ticketID)
	if err != nil {
		return nil, ErrTicketNotFound
	}
	// The ticket's station anchors it to a location; a miss is NotFound so
	// ticket ids don't leak across tenants.
	if _, err := s.kitchenRepo.FindStationByID(ctx, locationID, ticket.StationID); err != nil {
		return nil, ErrTicketNotFound
	}

	if !ticket.Status.CanTransitionTo(status) {
		return nil, ErrTicketStatusRegression
	}

	now := time.Now().UTC()
	switch status {
	case models.TicketInProgress:
		ticket.StartedAt = &now
	case models.TicketReady, models.TicketBumped:
		ticket.CompletedAt = &now
	}
	ticket.Status = status

	if err := s.kitchenRepo.SaveTicket(ctx, ticket); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		switch status {
		case models.TicketInProgress:
			_ = s.publisher.Publish(EventTicketStarted, ticket)
		case models.TicketReady:
			_ = s.publisher.Publish(EventTicketReady, ticket)
		}
	}

	if status.Complete() {
		if err := s.maybeCompleteOrder(ctx, ticket.OrderID); err != nil {
			log.Printf("[Kitchen] completion check for order %d failed: %v", ticket.OrderID, err)
		}
	}
	return ticket, nil
}

// maybeCompleteOrder advances the parent order to ready once every one of its
// tickets is ready or bumped. An order with zero tickets never qualifies;
// vacuous completion is rejected on purpose.
func (s *kitchenService) maybeCompleteOrder(ctx context.Context, orderID uint) error {
	tickets, err := s.kitchenRepo.FindTicketsByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if len(tickets) == 0 {
		return nil
	}
	for _, t := range tickets {
		if !t.Status.Complete() {
			return nil
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, models.OrderReady); err != nil {
		return err
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(EventOrderUpdated, map[string]any{
			"id":     orderID,
			"status": models.OrderReady,
		})
	}
	return nil
}
