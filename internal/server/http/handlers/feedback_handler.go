package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/server/http/dto"
)

// FeedbackHandler manages feedback submission and triage.
type FeedbackHandler struct {
	facade FeedbackFacade
}

// NewFeedbackHandler constructs FeedbackHandler.
func NewFeedbackHandler(facade FeedbackFacade) *FeedbackHandler {
	return &FeedbackHandler{facade: facade}
}

// Submit handles POST /api/user/feedback.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	feedback, err := h.facade.SubmitFeedback(c.Request.Context(), userID, req.Subject, req.Message, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusCreated, toFeedbackResponse(feedback))
}

// List handles GET /api/user/feedback.
func (h *FeedbackHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	entries, err := h.facade.FeedbackHistory(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(entries) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.FeedbackResponse, 0, len(entries))
	for i := range entries {
		response = append(response, toFeedbackResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Triage handles POST /api/kitchen/feedback/:id/triage.
func (h *FeedbackHandler) Triage(c *gin.Context) {
	staffID := CurrentUserID(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.FeedbackTriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	feedback, err := h.facade.TriageFeedback(c.Request.Context(), staffID, id, model.FeedbackStatus(req.Status), req.Response)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrForbidden):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toFeedbackResponse(feedback))
}
