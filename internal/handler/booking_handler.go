package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/waitron/waitron/internal/dto"
	"github.com/waitron/waitron/internal/middleware"
	"github.com/waitron/waitron/internal/models"
	"github.com/waitron/waitron/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/locations/:locationId", middleware.RequireTenant)
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
	g.DELETE("/bookings/:id", h.DeleteBooking)
	g.GET("/availability", h.GetAvailability)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CustomerName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "customer_name is required")
	}
	if req.PartySize <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "party_size must be positive")
	}
	if req.DurationMinutes < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "duration_minutes must be positive")
	}
	if req.Datetime.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "datetime is required")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), middleware.TenantID(c), locationID, service.CreateBookingInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		PartySize:       req.PartySize,
		Datetime:        req.Datetime,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLocationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNoTablesAvailable):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidBookingInput):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}

	var day *time.Time
	if d := c.QueryParam("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
		day = &parsed
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), middleware.TenantID(c), locationID, day)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), middleware.TenantID(c), locationID, id)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) || errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) UpdateBookingStatus(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.UpdateBookingStatus(c.Request().Context(), middleware.TenantID(c), locationID, id, models.BookingStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidBookingStatus):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrLocationNotFound), errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	err = h.svc.DeleteBooking(c.Request().Context(), middleware.TenantID(c), locationID, id)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) || errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BookingHandler) GetAvailability(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}

	day, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	partySize, err := strconv.Atoi(c.QueryParam("partySize"))
	if err != nil || partySize <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "partySize must be a positive integer")
	}

	slots, err := h.svc.GetAvailability(c.Request().Context(), middleware.TenantID(c), locationID, day, partySize)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.SlotResponse, len(slots))
	for i, s := range slots {
		resp[i] = dto.SlotResponse{Time: s.Time, Available: s.Available}
	}
	return c.JSON(http.StatusOK, resp)
}
