package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/server/http/dto"
	"github.com/campusbites/canteen/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, dto.OrderItemResponse{
			Name:     it.ItemName,
			Price:    it.Price,
			Quantity: it.Quantity,
			Subtotal: it.Subtotal(),
		})
	}
	return dto.OrderResponse{
		Token:               order.Token,
		Status:              string(order.Status),
		PaymentMethod:       string(order.PaymentMethod),
		IsPaid:              order.IsPaid,
		TotalAmount:         order.TotalAmount,
		DeliveryFee:         order.DeliveryFee,
		DeliveryType:        string(order.DeliveryType),
		DeliveryLocation:    order.DeliveryLocation,
		SpecialInstructions: order.SpecialInstructions,
		ScheduledFor:        order.ScheduledFor,
		Items:               items,
		CreatedAt:           order.CreatedAt,
	}
}

func toMenuItemResponse(item model.MenuItem) dto.MenuItemResponse {
	return dto.MenuItemResponse{
		ID:              item.ID,
		CategoryID:      item.CategoryID,
		Name:            item.Name,
		Description:     item.Description,
		Price:           item.Price,
		PreparationTime: item.PreparationTime,
		IsAvailable:     item.IsAvailable,
		IsTodaysSpecial: item.IsTodaysSpecial,
		IsVegetarian:    item.IsVegetarian,
	}
}

func toFeedbackResponse(f *model.Feedback) dto.FeedbackResponse {
	return dto.FeedbackResponse{
		ID:            f.ID,
		Subject:       f.Subject,
		Message:       f.Message,
		Rating:        f.Rating,
		Status:        string(f.Status),
		AdminResponse: f.AdminResponse,
		CreatedAt:     f.CreatedAt,
	}
}
