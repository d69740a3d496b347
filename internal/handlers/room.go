package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/ayurlink/chat-backend/internal/database"
	"github.com/ayurlink/chat-backend/internal/middleware"
	"github.com/ayurlink/chat-backend/internal/models"
	"github.com/ayurlink/chat-backend/internal/websocket"
)

// RoomHandler exposes read access to rooms. Rooms are only ever created
// by the materializer, so there is no create/join/leave surface here.
type RoomHandler struct {
	db  *database.Database
	hub *websocket.Hub
}

func NewRoomHandler(db *database.Database, hub *websocket.Hub) *RoomHandler {
	return &RoomHandler{db: db, hub: hub}
}

// GetMyRooms lists the caller's rooms with their last message.
func (h *RoomHandler) GetMyRooms(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	rooms, err := h.db.GetUserRooms(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rooms"})
		return
	}

	roomsResponse := make([]gin.H, len(rooms))
	for i, room := range rooms {
		roomResponse := formatRoomResponse(&room)

		messages, _ := h.db.GetRoomMessages(room.ID, 1, nil)
		if len(messages) > 0 {
			roomResponse["last_message"] = gin.H{
				"id":         messages[0].ID,
				"seq":        messages[0].Seq,
				"content":    messages[0].Content,
				"user_id":    messages[0].UserID,
				"created_at": messages[0].CreatedAt,
			}
		}

		online := lo.CountBy(room.MemberIDs(), h.hub.IsOnline)
		roomResponse["online_count"] = online

		roomsResponse[i] = roomResponse
	}

	c.JSON(http.StatusOK, gin.H{"rooms": roomsResponse})
}

// GetRoom returns one room the caller participates in.
func (h *RoomHandler) GetRoom(c *gin.Context) {
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

	response := formatRoomResponse(room)
	response["online_users"] = lo.Filter(room.MemberIDs(), func(id uuid.UUID, _ int) bool {
		return h.hub.IsOnline(id)
	})

	c.JSON(http.StatusOK, response)
}

func formatRoomResponse(room *models.Room) gin.H {
	members := make([]gin.H, len(room.Members))
	for i, member := range room.Members {
		members[i] = gin.H{
			"id":         member.ID,
			"username":   member.Username,
			"role":       member.Role,
			"avatar_url": member.AvatarURL,
		}
	}

	return gin.H{
		"id":         room.ID,
		"is_group":   room.IsGroup,
		"group_name": room.GroupName,
		"created_by": room.CreatedBy,
		"created_at": room.CreatedAt,
		"members":    members,
	}
}
