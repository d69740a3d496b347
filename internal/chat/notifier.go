package chat

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/ayurlink/chat-backend/internal/models"
	ws "github.com/ayurlink/chat-backend/internal/websocket"
)

// Pusher is the connection-registry surface the notifier needs. Satisfied
// by *websocket.Hub.
type Pusher interface {
	SendToUser(userID uuid.UUID, data []byte) int
}

// Notifier maps ledger, materializer and relay events onto registry
// pushes. Push failures are logged and absorbed; they never reach the
// caller of the operation that triggered them.
type Notifier struct {
	pusher Pusher
}

func NewNotifier(pusher Pusher) *Notifier {
	return &Notifier{pusher: pusher}
}

type UserPayload struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	AvatarURL string      `json:"avatar_url,omitempty"`
}

type InviteePayload struct {
	UserID          uuid.UUID            `json:"user_id"`
	Role            models.Role          `json:"role"`
	Status          models.InviteeStatus `json:"status"`
	SimilarityScore *float64             `json:"similarity_score,omitempty"`
}

type RequestPayload struct {
	ID         uuid.UUID          `json:"id"`
	Kind       models.RequestKind `json:"kind"`
	GroupName  string             `json:"group_name,omitempty"`
	Proposer   UserPayload        `json:"proposer"`
	ReasonKind models.ReasonKind  `json:"reason_kind"`
	ReasonText string             `json:"reason_text,omitempty"`
	Invitees   []InviteePayload   `json:"invitees"`
	CreatedAt  time.Time          `json:"created_at"`
}

type RequestUpdatePayload struct {
	RequestID uuid.UUID            `json:"request_id"`
	Responder uuid.UUID            `json:"responder"`
	Status    models.InviteeStatus `json:"status"`
}

type RoomPayload struct {
	ID           uuid.UUID   `json:"id"`
	IsGroup      bool        `json:"is_group"`
	GroupName    string      `json:"group_name,omitempty"`
	Participants []uuid.UUID `json:"participants"`
}

type MessagePayload struct {
	ID        uuid.UUID   `json:"id"`
	RoomID    uuid.UUID   `json:"room_id"`
	Seq       int64       `json:"seq"`
	Sender    UserPayload `json:"sender"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

func userPayload(u *models.User) UserPayload {
	return UserPayload{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}
}

func requestPayload(req *models.ChatRequest) RequestPayload {
	return RequestPayload{
		ID:         req.ID,
		Kind:       req.Kind,
		GroupName:  req.GroupName,
		Proposer:   userPayload(&req.Proposer),
		ReasonKind: req.ReasonKind,
		ReasonText: req.ReasonText,
		Invitees: lo.Map(req.Invitees, func(inv models.ChatInvitee, _ int) InviteePayload {
			return InviteePayload{
				UserID:          inv.UserID,
				Role:            inv.Role,
				Status:          inv.Status,
				SimilarityScore: inv.SimilarityScore,
			}
		}),
		CreatedAt: req.CreatedAt,
	}
}

// RequestReceived pushes the new proposal to every invitee.
func (n *Notifier) RequestReceived(req *models.ChatRequest) {
	payload := requestPayload(req)
	for _, inv := range req.Invitees {
		n.push(inv.UserID, ws.TypeRequestReceived, nil, payload)
	}
}

// RequestUpdated pushes an invitee's decision to the proposer and, for
// group requests, to every other invitee.
func (n *Notifier) RequestUpdated(req *models.ChatRequest, responder uuid.UUID, status models.InviteeStatus) {
	payload := RequestUpdatePayload{
		RequestID: req.ID,
		Responder: responder,
		Status:    status,
	}

	n.push(req.ProposerID, ws.TypeRequestUpdated, nil, payload)

	if req.Kind == models.KindGroup {
		for _, inv := range req.Invitees {
			if inv.UserID != responder {
				n.push(inv.UserID, ws.TypeRequestUpdated, nil, payload)
			}
		}
	}
}

// RoomReady pushes the materialized room to the given recipients.
func (n *Notifier) RoomReady(room *models.Room, recipients []uuid.UUID) {
	payload := RoomPayload{
		ID:           room.ID,
		IsGroup:      room.IsGroup,
		GroupName:    room.GroupName,
		Participants: room.MemberIDs(),
	}

	for _, userID := range recipients {
		n.push(userID, ws.TypeRoomReady, &room.ID, payload)
	}
}

// MessageNew fans a persisted message out to every participant of the
// room, sender included so their other devices stay consistent.
func (n *Notifier) MessageNew(room *models.Room, msg *models.Message, sender *models.User) {
	payload := MessagePayload{
		ID:        msg.ID,
		RoomID:    msg.RoomID,
		Seq:       msg.Seq,
		Sender:    userPayload(sender),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}

	for _, userID := range room.MemberIDs() {
		n.push(userID, ws.TypeMessageNew, &room.ID, payload)
	}
}

func (n *Notifier) push(userID uuid.UUID, eventType ws.EventType, roomID *uuid.UUID, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to encode %s payload: %v", eventType, err)
		return
	}

	event := ws.Event{
		Type:      eventType,
		RoomID:    roomID,
		Data:      data,
		Timestamp: time.Now(),
	}

	raw, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to encode %s event: %v", eventType, err)
		return
	}

	if reached := n.pusher.SendToUser(userID, raw); reached == 0 {
		log.Printf("No live connection for %s, dropped %s", userID, eventType)
	}
}
