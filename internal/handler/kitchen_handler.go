package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/waitron/waitron/internal/dto"
	"github.com/waitron/waitron/internal/middleware"
	"github.com/waitron/waitron/internal/models"
	"github.com/waitron/waitron/internal/service"
)

type KitchenHandler struct {
	svc service.KitchenService
}

func NewKitchenHandler(svc service.KitchenService) *KitchenHandler {
	return &KitchenHandler{svc: svc}
}

func (h *KitchenHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/locations/:locationId/kitchen", middleware.RequireTenant)
	g.POST("/stations", h.CreateStation)
	g.GET("/stations", h.ListStations)
	g.DELETE("/stations/:stationId", h.DeleteStation)
	g.POST("/stations/:stationId/items/:menuItemId", h.AssignItemToStation)
	g.GET("/tickets", h.ListTickets)
	g.PATCH("/tickets/:ticketId/status", h.UpdateTicketStatus)
}

func (h *KitchenHandler) CreateStation(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}

	var req dto.CreateStationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	station, err := h.svc.CreateStation(c.Request().Context(), middleware.TenantID(c), locationID, req.Name, req.SortOrder)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, dto.ToStationResponse(station))
}

func (h *KitchenHandler) ListStations(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}

	stations, err := h.svc.ListStations(c.Request().Context(), middleware.TenantID(c), locationID)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.StationResponse, len(stations))
	for i := range stations {
		resp[i] = dto.ToStationResponse(&stations[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *KitchenHandler) DeleteStation(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}
	stationID, err := paramUint(c, "stationId")
	if err != nil {
		return err
	}

	err = h.svc.DeleteStation(c.Request().Context(), middleware.TenantID(c), locationID, stationID)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) || errors.Is(err, service.ErrStationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *KitchenHandler) AssignItemToStation(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}
	stationID, err := paramUint(c, "stationId")
	if err != nil {
		return err
	}
	menuItemID, err := paramUint(c, "menuItemId")
	if err != nil {
		return err
	}

	err = h.svc.AssignItemToStation(c.Request().Context(), middleware.TenantID(c), locationID, stationID, menuItemID)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) || errors.Is(err, service.ErrStationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *KitchenHandler) ListTickets(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}

	var stationID *uint
	if s := c.QueryParam("stationId"); s != "" {
		id, err := paramUintValue(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid stationId")
		}
		stationID = &id
	}
	var status *models.TicketStatus
	if s := c.QueryParam("status"); s != "" {
		ts := models.TicketStatus(s)
		if !ts.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
		}
		status = &ts
	}

	tickets, err := h.svc.ListTickets(c.Request().Context(), middleware.TenantID(c), locationID, stationID, status)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.TicketResponse, len(tickets))
	for i := range tickets {
		resp[i] = dto.ToTicketResponse(&tickets[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *KitchenHandler) UpdateTicketStatus(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}
	ticketID, err := paramUint(c, "ticketId")
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ticket, err := h.svc.UpdateTicketStatus(c.Request().Context(), middleware.TenantID(c), locationID, ticketID, models.TicketStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTicketStatus):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrTicketStatusRegression):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrLocationNotFound), errors.Is(err, service.ErrTicketNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.ToTicketResponse(ticket))
}
