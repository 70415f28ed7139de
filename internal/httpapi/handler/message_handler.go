package handler

import (
	"net/http"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// RegisterRoutes registers messaging routes (already authenticated by parent
// middleware).
func (h *MessageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/donations/:id/messages", h.Send)
	router.GET("/donations/:id/messages", h.Thread)
	router.GET("/messages/unread_count", h.UnreadCount)
}

// Send posts a message into a donation thread
// POST /api/donations/:id/messages
func (h *MessageHandler) Send(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.SendMessageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messageService.Send(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Thread retrieves the conversation with one counterpart on a donation and
// marks the caller's side read
// GET /api/donations/:id/messages?with=<user_id>
func (h *MessageHandler) Thread(c *gin.Context) {
	userID := c.GetString("user_id")

	counterpartID := c.Query("with")
	if counterpartID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "with query parameter is required"})
		return
	}

	messages, err := h.messageService.Thread(c.Request.Context(), userID, c.Param("id"), counterpartID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// UnreadCount returns the caller's unread message count for the nav badge
// GET /api/messages/unread_count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID := c.GetString("user_id")

	count, err := h.messageService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
