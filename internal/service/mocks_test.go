package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/waitron/waitron/internal/models"
	"gorm.io/gorm"
)

// Function-field repository fakes; tests override only the calls they expect.

// txConn satisfies just enough of gorm's connection surface for Transaction
// to run its callback in-process. The repositories underneath are mocks, so
// no statement ever reaches it.
type txConn struct{}

func (txConn) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, nil
}

func (txConn) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (txConn) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (txConn) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (txConn) Commit() error   { return nil }
func (txConn) Rollback() error { return nil }

func txTestDB() *gorm.DB {
	db := &gorm.DB{Config: &gorm.Config{DisableNestedTransaction: true}}
	db.Statement = &gorm.Statement{DB: db, ConnPool: txConn{}}
	return db
}

type mockLocationRepo struct {
	findFn func(ctx context.Context, tenantID string, id uint) (*models.Location, error)
}

func (m *mockLocationRepo) FindByIDAndTenant(ctx context.Context, tenantID string, id uint) (*models.Location, error) {
	return m.findFn(ctx, tenantID, id)
}

func (m *mockLocationRepo) FindByIDAndTenantForUpdate(ctx context.Context, tx *gorm.DB, tenantID string, id uint) (*models.Location, error) {
	return m.findFn(ctx, tenantID, id)
}

type mockTableRepo struct {
	findByLocationFn func(ctx context.Context, tx *gorm.DB, locationID uint) ([]models.Table, error)
}

func (m *mockTableRepo) FindByLocation(ctx context.Context, tx *gorm.DB, locationID uint) ([]models.Table, error) {
	return m.findByLocationFn(ctx, tx, locationID)
}

type mockBookingRepo struct {
	createFn          func(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	findByIDFn        func(ctx context.Context, locationID, id uint) (*models.Booking, error)
	findByLocationFn  func(ctx context.Context, locationID uint, day *time.Time) ([]models.Booking, error)
	committedFn       func(ctx context.Context, tx *gorm.DB, locationID uint, start, end time.Time) ([]uint, error)
	findActiveByDayFn func(ctx context.Context, locationID uint, dayStart, dayEnd time.Time) ([]models.Booking, error)
	updateStatusFn    func(ctx context.Context, locationID, id uint, status models.BookingStatus) error
	deleteFn          func(ctx context.Context, locationID, id uint) error
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return m.createFn(ctx, tx, booking)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, locationID, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, locationID, id)
}

func (m *mockBookingRepo) FindByLocation(ctx context.Context, locationID uint, day *time.Time) ([]models.Booking, error) {
	return m.findByLocationFn(ctx, locationID, day)
}

func (m *mockBookingRepo) CommittedTableIDs(ctx context.Context, tx *gorm.DB, locationID uint, start, end time.Time) ([]uint, error) {
	return m.committedFn(ctx, tx, locationID, start, end)
}

func (m *mockBookingRepo) FindActiveByDay(ctx context.Context, locationID uint, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	return m.findActiveByDayFn(ctx, locationID, dayStart, dayEnd)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, locationID, id uint, status models.BookingStatus) error {
	return m.updateStatusFn(ctx, locationID, id, status)
}

func (m *mockBookingRepo) Delete(ctx context.Context, locationID, id uint) error {
	return m.deleteFn(ctx, locationID, id)
}

func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

type mockOrderRepo struct {
	createFn            func(ctx context.Context, tx *gorm.DB, order *models.Order) error
	findByIDFn          func(ctx context.Context, locationID, id uint) (*models.Order, error)
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error)
	findByLocationFn    func(ctx context.Context, locationID uint, status *models.OrderStatus) ([]models.Order, error)
	findItemsFn         func(ctx context.Context, tx *gorm.DB, orderID uint) ([]models.OrderItem, error)
	updateStatusFn      func(ctx context.Context, id uint, status models.OrderStatus) error
}

func (m *mockOrderRepo) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return m.createFn(ctx, tx, order)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, locationID, id uint) (*models.Order, error) {
	return m.findByIDFn(ctx, locationID, id)
}

func (m *mockOrderRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error) {
	return m.findByIDForUpdateFn(ctx, tx, id)
}

func (m *mockOrderRepo) FindByLocation(ctx context.Context, locationID uint, status *models.OrderStatus) ([]models.Order, error) {
	return m.findByLocationFn(ctx, locationID, status)
}

func (m *mockOrderRepo) FindItems(ctx context.Context, tx *gorm.DB, orderID uint) ([]models.OrderItem, error) {
	return m.findItemsFn(ctx, tx, orderID)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockOrderRepo) GetDB() *gorm.DB { return nil }

type mockMenuRepo struct {
	findItemsByIDsFn     func(ctx context.Context, locationID uint, ids []uint) ([]models.MenuItem, error)
	findModifiersByIDsFn func(ctx context.Context, ids []uint) ([]models.MenuModifier, error)
	findItemStationsFn   func(ctx context.Context, tx *gorm.DB, itemIDs []uint) ([]models.MenuItemStation, error)
	assignFn             func(ctx context.Context, menuItemID, stationID uint) error
}

func (m *mockMenuRepo) FindItemsByIDs(ctx context.Context, locationID uint, ids []uint) ([]models.MenuItem, error) {
	return m.findItemsByIDsFn(ctx, locationID, ids)
}

func (m *mockMenuRepo) FindModifiersByIDs(ctx context.Context, ids []uint) ([]models.MenuModifier, error) {
	return m.findModifiersByIDsFn(ctx, ids)
}

func (m *mockMenuRepo) FindItemStations(ctx context.Context, tx *gorm.DB, itemIDs []uint) ([]models.MenuItemStation, error) {
	return m.findItemStationsFn(ctx, tx, itemIDs)
}

func (m *mockMenuRepo) AssignItemToStation(ctx context.Context, menuItemID, stationID uint) error {
	return m.assignFn(ctx, menuItemID, stationID)
}

type mockKitchenRepo struct {
	createStationFn         func(ctx context.Context, station *models.KitchenStation) error
	findStationsFn          func(ctx context.Context, locationID uint) ([]models.KitchenStation, error)
	findStationByIDFn       func(ctx context.Context, locationID, id uint) (*models.KitchenStation, error)
	deleteStationFn         func(ctx context.Context, id uint) error
	createTicketsFn         func(ctx context.Context, tx *gorm.DB, tickets []models.KitchenTicket) error
	countTicketsByOrderFn   func(ctx context.Context, tx *gorm.DB, orderID uint) (int64, error)
	findTicketsByOrderFn    func(ctx context.Context, orderID uint) ([]models.KitchenTicket, error)
	findTicketByIDFn        func(ctx context.Context, id uint) (*models.KitchenTicket, error)
	findTicketsByStationsFn func(ctx context.Context, stationIDs []uint, status *models.TicketStatus) ([]models.KitchenTicket, error)
	saveTicketFn            func(ctx context.Context, ticket *models.KitchenTicket) error
}

func (m *mockKitchenRepo) CreateStation(ctx context.Context, station *models.KitchenStation) error {
	return m.createStationFn(ctx, station)
}

func (m *mockKitchenRepo) FindStations(ctx context.Context, locationID uint) ([]models.KitchenStation, error) {
	return m.findStationsFn(ctx, locationID)
}

func (m *mockKitchenRepo) FindStationByID(ctx context.Context, locationID, id uint) (*models.KitchenStation, error) {
	return m.findStationByIDFn(ctx, locationID, id)
}

func (m *mockKitchenRepo) DeleteStation(ctx context.Context, id uint) error {
	return m.deleteStationFn(ctx, id)
}

func (m *mockKitchenRepo) CreateTickets(ctx context.Context, tx *gorm.DB, tickets []models.KitchenTicket) error {
	return m.createTicketsFn(ctx, tx, tickets)
}

func (m *mockKitchenRepo) CountTicketsByOrder(ctx context.Context, tx *gorm.DB, orderID uint) (int64, error) {
	return m.countTicketsByOrderFn(ctx, tx, orderID)
}

func (m *mockKitchenRepo) FindTicketsByOrder(ctx context.Context, orderID uint) ([]models.KitchenTicket, error) {
	return m.findTicketsByOrderFn(ctx, orderID)
}

func (m *mockKitchenRepo) FindTicketByID(ctx context.Context, id uint) (*models.KitchenTicket, error) {
	return m.findTicketByIDFn(ctx, id)
}

func (m *mockKitchenRepo) FindTicketsByStations(ctx context.Context, stationIDs []uint, status *models.TicketStatus) ([]models.KitchenTicket, error) {
	return m.findTicketsByStationsFn(ctx, stationIDs, status)
}

func (m *mockKitchenRepo) SaveTicket(ctx context.Context, ticket *models.KitchenTicket) error {
	return m.saveTicketFn(ctx, ticket)
}

func (m *mockKitchenRepo) GetDB() *gorm.DB { return txTestDB() }

type publishedEvent struct {
	routingKey string
	payload    any
}

type mockPublisher struct {
	events []publishedEvent
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.events = append(m.events, publishedEvent{routingKey: routingKey, payload: payload})
	return nil
}

func locationAlwaysFound() *mockLocationRepo {
	return &mockLocationRepo{
		findFn: func(ctx context.Context, tenantID string, id uint) (*models.Location, error) {
			return &models.Location{ID: id, TenantID: tenantID}, nil
		},
	}
}

func locationNeverFound() *mockLocationRepo {
	return &mockLocationRepo{
		findFn: func(ctx context.Context, tenantID string, id uint) (*models.Location, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
}
