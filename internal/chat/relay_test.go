package chat_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ayurlink/chat-backend/internal/chat"
	"github.com/ayurlink/chat-backend/internal/models"
	ws "github.com/ayurlink/chat-backend/internal/websocket"
)

func newRelay(store *MockStore, pusher *MockPusher) *chat.Relay {
	return chat.NewRelay(store, chat.NewNotifier(pusher))
}

func testRoom(members ...*models.User) *models.Room {
	room := &models.Room{ID: uuid.New()}
	for _, m := range members {
		room.Members = append(room.Members, *m)
	}
	return room
}

func TestSend_UnknownRoom(t *testing.T) {
	store := new(MockStore)
	relay := newRelay(store, newMockPusher())

	roomID := uuid.New()
	store.On("GetRoom", roomID).Return(nil, gorm.ErrRecordNotFound)

	_, err := relay.Send(roomID, uuid.New(), "hello")

	var nfe *chat.NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestSend_NonParticipantForbidden(t *testing.T) {
	x := newUser("x", models.RoleUser)
	y := newUser("y", models.RoleUser)
	stranger := newUser("stranger", models.RoleUser)

	store := new(MockStore)
	pusher := newMockPusher()
	relay := newRelay(store, pusher)

	room := testRoom(x, y)
	store.On("GetRoom", room.ID).Return(room, nil)

	_, err := relay.Send(room.ID, stranger.ID, "hello")

	var fe *chat.ForbiddenError
	assert.ErrorAs(t, err, &fe)
	store.AssertNotCalled(t, "SaveMessage", mock.Anything)
	assert.Empty(t, pusher.EventsFor(x.ID))
	assert.Empty(t, pusher.EventsFor(y.ID))
}

func TestSend_EmptyContentRejected(t *testing.T) {
	x := newUser("x", models.RoleUser)
	y := newUser("y", models.RoleUser)

	store := new(MockStore)
	pusher := newMockPusher()
	relay := newRelay(store, pusher)

	room := testRoom(x, y)
	store.On("GetRoom", room.ID).Return(room, nil)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := relay.Send(room.ID, x.ID, content)

		var ve *chat.ValidationError
		assert.ErrorAs(t, err, &ve)
	}

	store.AssertNotCalled(t, "SaveMessage", mock.Anything)
	assert.Empty(t, pusher.EventsFor(y.ID))
}

// Two quick sends from the same sender reach the other participant in
// send order, with consecutive room sequences.
func TestSend_OrderPreserved(t *testing.T) {
	x := newUser("x", models.RoleUser)
	y := newUser("y", models.RoleUser)

	store := new(MockStore)
	pusher := newMockPusher()
	relay := newRelay(store, pusher)

	room := testRoom(x, y)
	store.On("GetRoom", room.ID).Return(room, nil)
	store.On("LatestSeq", room.ID).Return(int64(0), nil)
	store.On("SaveMessage", mock.AnythingOfType("*models.Message")).Return(nil)

	m1, err := relay.Send(room.ID, x.ID, "first")
	require.NoError(t, err)
	m2, err := relay.Send(room.ID, x.ID, "second")
	require.NoError(t, err)

	assert.Equal(t, int64(1), m1.Seq)
	assert.Equal(t, int64(2), m2.Seq)

	events := pusher.EventsFor(y.ID)
	require.Len(t, events, 2)
	assert.Equal(t, ws.TypeMessageNew, events[0].Type)
	assert.Equal(t, ws.TypeMessageNew, events[1].Type)

	// Sender's own devices get the echo too
	assert.Len(t, pusher.EventsFor(x.ID), 2)
}

// The sequence cache seeds from the store when the relay has not seen the
// room before.
func TestSend_SeqSeededFromStore(t *testing.T) {
	x := newUser("x", models.RoleUser)
	y := newUser("y", models.RoleUser)

	store := new(MockStore)
	relay := newRelay(store, newMockPusher())

	room := testRoom(x, y)
	store.On("GetRoom", room.ID).Return(room, nil)
	store.On("LatestSeq", room.ID).Return(int64(41), nil)
	store.On("SaveMessage", mock.AnythingOfType("*models.Message")).Return(nil)

	msg, err := relay.Send(room.ID, x.ID, "hello")

	require.NoError(t, err)
	assert.Equal(t, int64(42), msg.Seq)
	store.AssertNumberOfCalls(t, "LatestSeq", 1)
}

// Concurrent sends from different senders all persist with distinct,
// gapless sequences: every recipient sees one total order.
func TestSend_ConcurrentSendsSerialized(t *testing.T) {
	x := newUser("x", models.RoleUser)
	y := newUser("y", models.RoleUser)

	store := new(MockStore)
	relay := newRelay(store, newMockPusher())

	room := testRoom(x, y)

	var savedMu sync.Mutex
	var savedSeqs []int64

	store.On("GetRoom", room.ID).Return(room, nil)
	store.On("LatestSeq", room.ID).Return(int64(0), nil)
	store.On("SaveMessage", mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			savedMu.Lock()
			savedSeqs = append(savedSeqs, args.Get(0).(*models.Message).Seq)
			savedMu.Unlock()
		}).
		Return(nil)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sender := x.ID
		if i%2 == 1 {
			sender = y.ID
		}
		go func(i int, sender uuid.UUID) {
			defer wg.Done()
			_, err := relay.Send(room.ID, sender, fmt.Sprintf("message %d", i))
			assert.NoError(t, err)
		}(i, sender)
	}
	wg.Wait()

	require.Len(t, savedSeqs, n)
	seen := make(map[int64]bool, n)
	for _, seq := range savedSeqs {
		assert.False(t, seen[seq], "duplicate seq %d", seq)
		assert.GreaterOrEqual(t, seq, int64(1))
		assert.LessOrEqual(t, seq, int64(n))
		seen[seq] = true
	}
}
