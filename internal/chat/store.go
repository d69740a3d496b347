package chat

import (
	"github.com/google/uuid"

	"github.com/ayurlink/chat-backend/internal/models"
)

// Store is the persistence surface the chat core needs. The gorm-backed
// implementation lives in internal/database; lookups for missing records
// return gorm.ErrRecordNotFound.
type Store interface {
	CreateChatRequest(req *models.ChatRequest) error
	GetChatRequest(id uuid.UUID) (*models.ChatRequest, error)
	// UpdateInviteeStatus flips a pending invitee entry to a terminal
	// status. Returns false if the entry was not pending anymore.
	UpdateInviteeStatus(requestID, userID uuid.UUID, status models.InviteeStatus) (bool, error)
	// LinkRoom sets the request's room reference. Set-once: returns false
	// if a room was already linked.
	LinkRoom(requestID, roomID uuid.UUID) (bool, error)

	CreateRoom(room *models.Room) error
	GetRoom(id uuid.UUID) (*models.Room, error)
	AddRoomMember(roomID, userID uuid.UUID) error

	SaveMessage(msg *models.Message) error
	// LatestSeq returns the highest message sequence in the room, 0 if empty.
	LatestSeq(roomID uuid.UUID) (int64, error)
}
