package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/server/http/dto"
)

// WalletHandler manages the prepaid wallet endpoints.
type WalletHandler struct {
	facade WalletFacade
}

// NewWalletHandler constructs WalletHandler.
func NewWalletHandler(facade WalletFacade) *WalletHandler {
	return &WalletHandler{facade: facade}
}

// Summary handles GET /api/user/wallet.
func (h *WalletHandler) Summary(c *gin.Context) {
	userID := CurrentUserID(c)
	summary, err := h.facade.WalletSummary(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.WalletResponse{
		Balance:      summary.Balance,
		MonthCredits: summary.MonthCredits,
		MonthDebits:  summary.MonthDebits,
	})
}

// Transactions handles GET /api/user/wallet/transactions.
func (h *WalletHandler) Transactions(c *gin.Context) {
	userID := CurrentUserID(c)
	filter := model.WalletTxnType(c.Query("type"))
	limit := queryInt(c, "limit", 0)
	offset := queryInt(c, "offset", 0)

	txns, err := h.facade.WalletTransactions(c.Request.Context(), userID, filter, limit, offset)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(txns) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.WalletTransactionResponse, 0, len(txns))
	for _, txn := range txns {
		response = append(response, dto.WalletTransactionResponse{
			Amount:      txn.Amount,
			Type:        string(txn.Type),
			Description: txn.Description,
			ReferenceID: txn.ReferenceID,
			CreatedAt:   txn.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// TopUp handles POST /api/user/wallet/topup.
func (h *WalletHandler) TopUp(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	balance, err := h.facade.WalletTopUp(c.Request.Context(), userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount), errors.Is(err, domainErrors.ErrWalletCapExceeded):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.TopUpResponse{Balance: balance})
}
