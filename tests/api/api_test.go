//go:build integration

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waitron/waitron/internal/dto"
	"github.com/waitron/waitron/internal/handler"
	"github.com/waitron/waitron/internal/middleware"
	"github.com/waitron/waitron/internal/models"
	"github.com/waitron/waitron/internal/repository"
	"github.com/waitron/waitron/internal/service"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const tenant = "tenant-api"

var (
	testDB *gorm.DB
	server *httptest.Server
)

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "waitron_api_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	migrated := []any{
		&models.Location{}, &models.Table{}, &models.Booking{},
		&models.MenuItem{}, &models.MenuModifier{},
		&models.Order{}, &models.OrderItem{},
		&models.KitchenStation{}, &models.MenuItemStation{}, &models.KitchenTicket{},
	}
	if err := testDB.Migrator().DropTable(migrated...); err != nil {
		log.Fatalf("failed to reset test database: %v", err)
	}
	testDB.Exec("DROP TABLE IF EXISTS booking_tables")
	if err := testDB.AutoMigrate(migrated...); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	server = httptest.NewServer(buildAPI())
	code := m.Run()
	server.Close()
	os.Exit(code)
}

// buildAPI wires the HTTP surface exactly like main, minus the broker and
// redis pieces.
func buildAPI() *echo.Echo {
	locationRepo := repository.NewLocationRepository(testDB)
	tableRepo := repository.NewTableRepository(testDB)
	bookingRepo := repository.NewBookingRepository(testDB)
	menuRepo := repository.NewMenuRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	kitchenRepo := repository.NewKitchenRepository(testDB)

	bookingSvc := service.NewBookingService(bookingRepo, locationRepo, tableRepo)
	kitchenSvc := service.NewKitchenService(kitchenRepo, orderRepo, menuRepo, locationRepo, nil, nil)
	orderSvc := service.NewOrderService(orderRepo, menuRepo, locationRepo, kitchenSvc, nil)

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewOrderHandler(orderSvc).RegisterRoutes(e)
	handler.NewKitchenHandler(kitchenSvc).RegisterRoutes(e)
	return e
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// --- HTTP helpers ---

func doJSON(t *testing.T, method, path string, body any, out any) int {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, server.URL+path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeader, tenant)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func seedLocation(t *testing.T, capacities ...int) *models.Location {
	t.Helper()
	loc := &models.Location{TenantID: tenant, Name: "Osteria API", Timezone: "UTC"}
	require.NoError(t, testDB.Create(loc).Error)
	for i, capacity := range capacities {
		require.NoError(t, testDB.Create(&models.Table{
			LocationID: loc.ID,
			Name:       fmt.Sprintf("T%d", i+1),
			Capacity:   capacity,
			Status:     models.TableAvailable,
		}).Error)
	}
	return loc
}

// --- Scenarios ---

func TestBookingFlow(t *testing.T) {
	loc := seedLocation(t, 2, 4)
	base := fmt.Sprintf("/api/v1/locations/%d", loc.ID)

	// the whole day is open
	var slots []dto.SlotResponse
	code := doJSON(t, http.MethodGet, base+"/availability?date=2026-07-01&partySize=4", nil, &slots)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, slots, 26)
	assert.True(t, slots[0].Available)

	// book the four-top at 19:00
	var booking dto.BookingResponse
	code = doJSON(t, http.MethodPost, base+"/bookings", dto.CreateBookingRequest{
		CustomerName: "Nia",
		PartySize:    4,
		Datetime:     time.Date(2026, 7, 1, 19, 0, 0, 0, time.UTC),
	}, &booking)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, models.BookingPending, booking.Status)
	require.Len(t, booking.Tables, 1)
	assert.Equal(t, 4, booking.Tables[0].Capacity)

	// the 19:00 slot no longer fits another four
	code = doJSON(t, http.MethodGet, base+"/availability?date=2026-07-01&partySize=4", nil, &slots)
	require.Equal(t, http.StatusOK, code)
	for _, s := range slots {
		if s.Time.Hour() == 19 && s.Time.Minute() == 0 {
			assert.False(t, s.Available)
		}
	}

	// a second four-top party at the same time is turned away
	code = doJSON(t, http.MethodPost, base+"/bookings", dto.CreateBookingRequest{
		CustomerName: "Rival",
		PartySize:    4,
		Datetime:     time.Date(2026, 7, 1, 19, 0, 0, 0, time.UTC),
	}, nil)
	assert.Equal(t, http.StatusConflict, code)

	// cancel, then the rival fits
	var updated dto.BookingResponse
	code = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/bookings/%d/status", base, booking.ID),
		dto.UpdateStatusRequest{Status: "cancelled"}, &updated)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.BookingCancelled, updated.Status)

	code = doJSON(t, http.MethodPost, base+"/bookings", dto.CreateBookingRequest{
		CustomerName: "Rival",
		PartySize:    4,
		Datetime:     time.Date(2026, 7, 1, 19, 0, 0, 0, time.UTC),
	}, nil)
	assert.Equal(t, http.StatusCreated, code)
}

func TestOrderToKitchenFlow(t *testing.T) {
	loc := seedLocation(t, 4)
	base := fmt.Sprintf("/api/v1/locations/%d", loc.ID)

	// stations and menu
	var grill dto.StationResponse
	code := doJSON(t, http.MethodPost, base+"/kitchen/stations", dto.CreateStationRequest{Name: "Grill", SortOrder: 1}, &grill)
	require.Equal(t, http.StatusCreated, code)

	burger := &models.MenuItem{LocationID: loc.ID, Name: "Burger", PriceCents: 1200, Available: true}
	require.NoError(t, testDB.Create(burger).Error)
	cheese := &models.MenuModifier{LocationID: loc.ID, Name: "Extra cheese", PriceCents: 300}
	require.NoError(t, testDB.Create(cheese).Error)

	code = doJSON(t, http.MethodPost, fmt.Sprintf("%s/kitchen/stations/%d/items/%d", base, grill.ID, burger.ID), nil, nil)
	require.Equal(t, http.StatusNoContent, code)

	// place and confirm an order
	var order dto.OrderResponse
	code = doJSON(t, http.MethodPost, base+"/orders", dto.CreateOrderRequest{
		Type: "dine_in",
		Items: []dto.OrderLineRequest{
			{MenuItemID: burger.ID, ModifierIDs: []uint{cheese.ID}, Quantity: 3},
		},
	}, &order)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 4500, order.TotalCents)

	code = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/orders/%d/status", base, order.ID),
		dto.UpdateStatusRequest{Status: "confirmed"}, nil)
	require.Equal(t, http.StatusOK, code)

	// one ticket on the grill
	var tickets []dto.TicketResponse
	code = doJSON(t, http.MethodGet, base+"/kitchen/tickets", nil, &tickets)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, tickets, 1)
	assert.Equal(t, grill.ID, tickets[0].StationID)

	// work it to ready; the order follows
	code = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/kitchen/tickets/%d/status", base, tickets[0].ID),
		dto.UpdateStatusRequest{Status: "in_progress"}, nil)
	require.Equal(t, http.StatusOK, code)

	var done dto.TicketResponse
	code = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/kitchen/tickets/%d/status", base, tickets[0].ID),
		dto.UpdateStatusRequest{Status: "ready"}, &done)
	require.Equal(t, http.StatusOK, code)
	assert.NotNil(t, done.StartedAt)
	assert.NotNil(t, done.CompletedAt)

	var got dto.OrderResponse
	code = doJSON(t, http.MethodGet, fmt.Sprintf("%s/orders/%d", base, order.ID), nil, &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.OrderReady, got.Status)

	// moving the ticket backwards is refused
	code = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/kitchen/tickets/%d/status", base, tickets[0].ID),
		dto.UpdateStatusRequest{Status: "pending"}, nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestTenantHeaderIsRequired(t *testing.T) {
	loc := seedLocation(t, 2)

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/v1/locations/%d/bookings", server.URL, loc.ID), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestForeignTenantSeesNothing(t *testing.T) {
	loc := seedLocation(t, 2)

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/v1/locations/%d/bookings", server.URL, loc.ID), nil)
	require.NoError(t, err)
	req.Header.Set(middleware.TenantHeader, "someone-else")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
