package chat

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayurlink/chat-backend/internal/models"
)

// Relay persists outbound messages and fans them out to the room's
// connected participants. A per-room mutex serializes sequence assignment
// and the persist step, which is what gives every room one total order.
type Relay struct {
	store    Store
	notifier *Notifier
	locks    *keyedMutex

	// Next-sequence cache per room, seeded from the store on first send.
	// Only read or written while holding that room's lock; seqMu guards
	// the map itself.
	seqMu sync.Mutex
	seqs  map[uuid.UUID]int64
}

func NewRelay(store Store, notifier *Notifier) *Relay {
	return &Relay{
		store:    store,
		notifier: notifier,
		locks:    newKeyedMutex(),
		seqs:     make(map[uuid.UUID]int64),
	}
}

// Send persists content as the next message of the room and pushes a
// message.new event to every participant, sender included. A recipient
// being offline does not fail the send; reconnecting clients catch up
// through the history read path.
func (r *Relay) Send(roomID, senderID uuid.UUID, content string) (*models.Message, error) {
	r.locks.Lock(roomID)
	defer r.locks.Unlock(roomID)

	room, err := r.store.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "room"}
		}
		return nil, err
	}

	if !room.HasMember(senderID) {
		return nil, forbiddenf("user %s is not a participant of room %s", senderID, roomID)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ValidationError{Reason: "message content is empty"}
	}

	seq, err := r.nextSeq(roomID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		RoomID:    roomID,
		Seq:       seq,
		UserID:    senderID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := r.store.SaveMessage(msg); err != nil {
		return nil, err
	}

	sender := roomMember(room, senderID)
	msg.User = *sender
	r.notifier.MessageNew(room, msg, sender)

	return msg, nil
}

// nextSeq must be called with the room's lock held.
func (r *Relay) nextSeq(roomID uuid.UUID) (int64, error) {
	r.seqMu.Lock()
	seq, ok := r.seqs[roomID]
	r.seqMu.Unlock()

	if !ok {
		latest, err := r.store.LatestSeq(roomID)
		if err != nil {
			return 0, err
		}
		seq = latest
	}

	seq++
	r.seqMu.Lock()
	r.seqs[roomID] = seq
	r.seqMu.Unlock()
	return seq, nil
}

func roomMember(room *models.Room, userID uuid.UUID) *models.User {
	for i := range room.Members {
		if room.Members[i].ID == userID {
			return &room.Members[i]
		}
	}
	return &models.User{ID: userID}
}
