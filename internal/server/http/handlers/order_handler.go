package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/server/http/dto"
	"github.com/campusbites/canteen/internal/usecase"
)

// OrderHandler manages order placement, history and cancellation.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/user/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	in := usecase.PlaceOrderInput{
		PaymentMethod:       model.PaymentMethod(req.PaymentMethod),
		DeliveryType:        model.DeliveryType(req.DeliveryType),
		DeliveryLocation:    req.DeliveryLocation,
		SpecialInstructions: req.SpecialInstructions,
		ScheduledFor:        req.ScheduledFor,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, usecase.OrderItemInput{MenuItemID: item.MenuItemID, Quantity: item.Quantity})
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), userID, in)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMaintenanceMode):
			c.Status(http.StatusServiceUnavailable)
		case errors.Is(err, domainErrors.ErrEmptyOrder),
			errors.Is(err, domainErrors.ErrInvalidSchedule),
			errors.Is(err, domainErrors.ErrMissingLocation):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// List handles GET /api/user/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	limit := queryInt(c, "limit", 0)
	offset := queryInt(c, "offset", 0)

	orders, err := h.facade.Orders(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Detail handles GET /api/user/orders/:token.
func (h *OrderHandler) Detail(c *gin.Context) {
	userID := CurrentUserID(c)
	order, err := h.facade.Order(c.Request.Context(), userID, c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Cancel handles POST /api/user/orders/:token/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID := CurrentUserID(c)
	order, refunded, err := h.facade.CancelOrder(c.Request.Context(), userID, c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotCancellable):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.CancelOrderResponse{Order: toOrderResponse(order), Refunded: refunded})
}
