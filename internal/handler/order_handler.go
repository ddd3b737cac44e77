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

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/locations/:locationId", middleware.RequireTenant)
	g.POST("/orders", h.CreateOrder)
	g.GET("/orders", h.ListOrders)
	g.GET("/orders/:id", h.GetOrder)
	g.PATCH("/orders/:id/status", h.UpdateOrderStatus)
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "items must not be empty")
	}
	orderType := models.OrderType(req.Type)
	if !orderType.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "type must be dine_in or takeaway")
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "quantity must be positive")
		}
	}

	lines := make([]service.OrderLineInput, len(req.Items))
	for i, line := range req.Items {
		lines[i] = service.OrderLineInput{
			MenuItemID:  line.MenuItemID,
			ModifierIDs: line.ModifierIDs,
			Quantity:    line.Quantity,
			Notes:       line.Notes,
		}
	}

	order, err := h.svc.CreateOrder(c.Request().Context(), middleware.TenantID(c), locationID, service.CreateOrderInput{
		TableID:      req.TableID,
		Type:         orderType,
		CustomerName: req.CustomerName,
		Items:        lines,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLocationNotFound), errors.Is(err, service.ErrMenuItemNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidOrderInput):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}

	var status *models.OrderStatus
	if s := c.QueryParam("status"); s != "" {
		os := models.OrderStatus(s)
		if !os.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
		}
		status = &os
	}

	orders, err := h.svc.ListOrders(c.Request().Context(), middleware.TenantID(c), locationID, status)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		resp[i] = dto.ToOrderResponse(&orders[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	locationID, err := paramUint(c, "locationId")
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	order, err := h.svc.GetOrder(c.Request().Context(), middleware.TenantID(c), locationID, id)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) || errors.Is(err, service.ErrOrderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
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

	order, err := h.svc.UpdateOrderStatus(c.Request().Context(), middleware.TenantID(c), locationID, id, models.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrLocationNotFound), errors.Is(err, service.ErrOrderNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
