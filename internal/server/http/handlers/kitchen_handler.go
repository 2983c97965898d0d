package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/server/http/dto"
)

// KitchenHandler serves the kitchen console endpoints.
type KitchenHandler struct {
	facade OrderFacade
}

// NewKitchenHandler constructs KitchenHandler.
func NewKitchenHandler(facade OrderFacade) *KitchenHandler {
	return &KitchenHandler{facade: facade}
}

// Active handles GET /api/kitchen/orders.
func (h *KitchenHandler) Active(c *gin.Context) {
	orders, err := h.facade.ActiveOrders(c.Request.Context())
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

// Advance handles POST /api/kitchen/orders/:token/status.
func (h *KitchenHandler) Advance(c *gin.Context) {
	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.AdvanceOrder(c.Request.Context(), c.Param("token"), model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}
