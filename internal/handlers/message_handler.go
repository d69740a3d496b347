package handlers

import (
	"encoding/json"
	"log"

	"github.com/ayurlink/chat-backend/internal/chat"
	"github.com/ayurlink/chat-backend/internal/handlers/dto"
	"github.com/ayurlink/chat-backend/internal/websocket"
)

// MessageHandler routes inbound WebSocket frames into the relay.
type MessageHandler struct {
	relay *chat.Relay
}

func NewMessageHandler(relay *chat.Relay) *MessageHandler {
	return &MessageHandler{relay: relay}
}

func (h *MessageHandler) HandleEvent(client *websocket.Client, event *websocket.Event) error {
	switch event.Type {
	case websocket.TypeMessageSend:
		return h.handleSend(client, event)

	default:
		log.Printf("Unknown event type: %s", event.Type)
		return nil
	}
}

func (h *MessageHandler) handleSend(client *websocket.Client, event *websocket.Event) error {
	if event.RoomID == nil {
		return websocket.ErrInvalidEvent
	}

	var payload dto.SendMessagePayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return err
	}

	// The relay persists, assigns the room sequence and fans the message
	// out to every participant, this sender's connections included, so
	// the frame needs no direct reply.
	_, err := h.relay.Send(*event.RoomID, client.UserID, payload.Content)
	return err
}
