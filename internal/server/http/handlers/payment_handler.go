package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbites/canteen/internal/adapter/stripegw"
	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/server/http/dto"
)

// PaymentHandler drives the three payment paths and gateway callbacks.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// PayCash handles POST /api/user/orders/:token/pay/cash.
func (h *PaymentHandler) PayCash(c *gin.Context) {
	h.pay(c, h.facade.PayCash)
}

// PayWallet handles POST /api/user/orders/:token/pay/wallet.
func (h *PaymentHandler) PayWallet(c *gin.Context) {
	h.pay(c, h.facade.PayWallet)
}

// PayOnline handles POST /api/user/orders/:token/pay/online.
func (h *PaymentHandler) PayOnline(c *gin.Context) {
	userID := CurrentUserID(c)
	session, err := h.facade.StartOnlinePayment(c.Request.Context(), userID, c.Param("token"))
	if err != nil {
		h.paymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CheckoutResponse{SessionID: session.ID, RedirectURL: session.RedirectURL})
}

// OnlineSuccess handles GET /api/user/orders/:token/pay/online/success.
func (h *PaymentHandler) OnlineSuccess(c *gin.Context) {
	userID := CurrentUserID(c)
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ConfirmOnlinePayment(c.Request.Context(), userID, c.Param("token"), sessionID)
	if err != nil {
		h.paymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Webhook handles POST /api/webhook/stripe.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err = h.facade.HandleGatewayWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, stripegw.ErrMalformedEvent) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// History handles GET /api/user/orders/:token/payments.
func (h *PaymentHandler) History(c *gin.Context) {
	userID := CurrentUserID(c)
	payments, err := h.facade.OrderPayments(c.Request.Context(), userID, c.Param("token"))
	if err != nil {
		h.paymentError(c, err)
		return
	}

	response := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		response = append(response, dto.PaymentResponse{
			Amount:        p.Amount,
			Method:        string(p.Method),
			Status:        string(p.Status),
			TransactionID: p.TransactionID,
			CreatedAt:     p.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

func (h *PaymentHandler) pay(c *gin.Context, fn func(ctx context.Context, userID int64, token string) (*model.Order, error)) {
	userID := CurrentUserID(c)
	order, err := fn(c.Request.Context(), userID, c.Param("token"))
	if err != nil {
		h.paymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *PaymentHandler) paymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrAlreadyPaid):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrInsufficientBalance):
		c.Status(http.StatusPaymentRequired)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
