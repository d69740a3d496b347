package chat_test

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ayurlink/chat-backend/internal/models"
	ws "github.com/ayurlink/chat-backend/internal/websocket"
)

// MockStore is a testify mock of the chat.Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateChatRequest(req *models.ChatRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockStore) GetChatRequest(id uuid.UUID) (*models.ChatRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRequest), args.Error(1)
}

func (m *MockStore) UpdateInviteeStatus(requestID, userID uuid.UUID, status models.InviteeStatus) (bool, error) {
	args := m.Called(requestID, userID, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) LinkRoom(requestID, roomID uuid.UUID) (bool, error) {
	args := m.Called(requestID, roomID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) CreateRoom(room *models.Room) error {
	args := m.Called(room)
	return args.Error(0)
}

func (m *MockStore) GetRoom(id uuid.UUID) (*models.Room, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockStore) AddRoomMember(roomID, userID uuid.UUID) error {
	args := m.Called(roomID, userID)
	return args.Error(0)
}

func (m *MockStore) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStore) LatestSeq(roomID uuid.UUID) (int64, error) {
	args := m.Called(roomID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPusher records every push so tests can assert on the event stream
// each user observed.
type MockPusher struct {
	mu     sync.Mutex
	pushes map[uuid.UUID][]ws.Event
}

func newMockPusher() *MockPusher {
	return &MockPusher{pushes: make(map[uuid.UUID][]ws.Event)}
}

func (p *MockPusher) SendToUser(userID uuid.UUID, data []byte) int {
	var event ws.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes[userID] = append(p.pushes[userID], event)
	return 1
}

// EventsFor returns the events pushed to userID in delivery order.
func (p *MockPusher) EventsFor(userID uuid.UUID) []ws.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ws.Event, len(p.pushes[userID]))
	copy(out, p.pushes[userID])
	return out
}

// TypesFor returns just the event types pushed to userID, in order.
func (p *MockPusher) TypesFor(userID uuid.UUID) []ws.EventType {
	events := p.EventsFor(userID)
	types := make([]ws.EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}
