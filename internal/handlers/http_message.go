package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayurlink/chat-backend/internal/chat"
	"github.com/ayurlink/chat-backend/internal/database"
	"github.com/ayurlink/chat-backend/internal/handlers/dto"
	"github.com/ayurlink/chat-backend/internal/middleware"
	"github.com/ayurlink/chat-backend/internal/models"
)

type HTTPMessageHandler struct {
	db    *database.Database
	relay *chat.Relay
}

func NewHTTPMessageHandler(db *database.Database, relay *chat.Relay) *HTTPMessageHandler {
	return &HTTPMessageHandler{db: db, relay: relay}
}

// GetRoomMessages is the history read path: it is how a reconnecting
// client catches up on messages whose real-time push it missed.
func (h *HTTPMessageHandler) GetRoomMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	room, err := h.db.GetRoom(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	if !room.HasMember(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this room"})
		return
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var beforeSeq *int64
	if before := c.Query("before"); before != "" {
		if seq, err := strconv.ParseInt(before, 10, 64); err == nil {
			beforeSeq = &seq
		}
	}

	messages, err := h.db.GetRoomMessages(roomID, limit, beforeSeq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	result := make([]dto.MessageResponse, len(messages))
	for i, msg := range messages {
		result[i] = formatMessageResponse(&msg)
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": result,
		"has_more": len(messages) == limit,
	})
}

// SendMessage sends a message over HTTP, an alternative to the WebSocket path.
func (h *HTTPMessageHandler) SendMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req dto.SendMessagePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.relay.Send(roomID, userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, formatMessageResponse(msg))
}

func formatMessageResponse(msg *models.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        msg.ID,
		RoomID:    msg.RoomID,
		Seq:       msg.Seq,
		UserID:    msg.UserID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
		User: dto.UserInfo{
			ID:        msg.User.ID,
			Username:  msg.User.Username,
			Role:      string(msg.User.Role),
			AvatarURL: msg.User.AvatarURL,
		},
	}
}
