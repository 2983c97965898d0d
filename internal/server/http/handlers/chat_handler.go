package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbites/canteen/internal/server/http/dto"
)

// ChatHandler answers assistant messages.
type ChatHandler struct {
	facade ChatFacade
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(facade ChatFacade) *ChatHandler {
	return &ChatHandler{facade: facade}
}

// Message handles POST /api/chatbot.
func (h *ChatHandler) Message(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	reply := h.facade.Chat(c.Request.Context(), userID, req.Message)

	quick := make([]dto.QuickReplyResponse, 0, len(reply.QuickReplies))
	for _, qr := range reply.QuickReplies {
		quick = append(quick, dto.QuickReplyResponse{Label: qr.Label, Message: qr.Message})
	}
	c.JSON(http.StatusOK, dto.ChatResponse{
		Response:     reply.Response,
		Intent:       reply.Intent,
		QuickReplies: quick,
	})
}
