package chat

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ayurlink/chat-backend/internal/models"
)

// Materializer turns a sufficiently-accepted request into a persistent
// room. Quorum: a private request needs its sole invitee to accept; a
// group request opens on the first acceptance. Invitees of a group who
// accept after the room already exists are admitted to it by the next
// materialization check; group rooms grow only through this path.
type Materializer struct {
	store    Store
	notifier *Notifier
}

func NewMaterializer(store Store, notifier *Notifier) *Materializer {
	return &Materializer{store: store, notifier: notifier}
}

// TryMaterialize is idempotent: re-running it never creates a duplicate
// room. Callers must hold the per-request lock; the ledger calls it from
// Respond, which does.
func (m *Materializer) TryMaterialize(req *models.ChatRequest) (*models.Room, error) {
	accepted := req.AcceptedInvitees()
	if len(accepted) == 0 {
		return nil, nil
	}

	if req.RoomID == nil {
		return m.createRoom(req)
	}

	room, err := m.store.GetRoom(*req.RoomID)
	if err != nil {
		return nil, err
	}

	// Private rooms have immutable membership; only group rooms admit
	// late acceptors.
	if req.Kind != models.KindGroup {
		return room, nil
	}
	return m.admitLateAcceptors(req, room)
}

func (m *Materializer) createRoom(req *models.ChatRequest) (*models.Room, error) {
	room := &models.Room{
		IsGroup:   req.Kind == models.KindGroup,
		GroupName: req.GroupName,
		CreatedBy: req.ProposerID,
		CreatedAt: time.Now(),
	}
	if err := m.store.CreateRoom(room); err != nil {
		return nil, err
	}

	participants := []models.User{req.Proposer}
	if err := m.store.AddRoomMember(room.ID, req.ProposerID); err != nil {
		return nil, err
	}
	for _, inv := range req.Invitees {
		if inv.Status != models.StatusAccepted {
			continue
		}
		if err := m.store.AddRoomMember(room.ID, inv.UserID); err != nil {
			return nil, err
		}
		participants = append(participants, inv.User)
	}
	room.Members = participants

	linked, err := m.store.LinkRoom(req.ID, room.ID)
	if err != nil {
		return nil, err
	}
	if !linked {
		// Lost a race we should have been protected from; keep the
		// already-linked room authoritative.
		log.Printf("Request %s already linked to a room, discarding %s", req.ID, room.ID)
		fresh, err := m.store.GetChatRequest(req.ID)
		if err != nil {
			return nil, err
		}
		req.RoomID = fresh.RoomID
		return m.store.GetRoom(*fresh.RoomID)
	}
	roomID := room.ID
	req.RoomID = &roomID

	recipients := append(req.AcceptedInvitees(), req.ProposerID)
	m.notifier.RoomReady(room, recipients)

	log.Printf("Materialized room %s for request %s (%d participants)", room.ID, req.ID, len(room.Members))
	return room, nil
}

func (m *Materializer) admitLateAcceptors(req *models.ChatRequest, room *models.Room) (*models.Room, error) {
	for _, inv := range req.Invitees {
		if inv.Status != models.StatusAccepted || room.HasMember(inv.UserID) {
			continue
		}
		if err := m.store.AddRoomMember(room.ID, inv.UserID); err != nil {
			return nil, err
		}
		room.Members = append(room.Members, inv.User)
		m.notifier.RoomReady(room, []uuid.UUID{inv.UserID})
		log.Printf("Admitted late acceptor %s to room %s", inv.UserID, room.ID)
	}
	return room, nil
}
