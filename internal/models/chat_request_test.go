package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ayurlink/chat-backend/internal/models"
)

func TestChatRequest_Invitee(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	req := models.ChatRequest{
		Invitees: []models.ChatInvitee{
			{UserID: a, Status: models.StatusPending},
			{UserID: b, Status: models.StatusAccepted},
		},
	}

	assert.NotNil(t, req.Invitee(a))
	assert.Equal(t, b, req.Invitee(b).UserID)
	assert.Nil(t, req.Invitee(uuid.New()))
}

func TestChatRequest_AcceptedInvitees(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	req := models.ChatRequest{
		Invitees: []models.ChatInvitee{
			{UserID: a, Status: models.StatusAccepted},
			{UserID: b, Status: models.StatusRejected},
			{UserID: c, Status: models.StatusAccepted},
		},
	}

	assert.ElementsMatch(t, []uuid.UUID{a, c}, req.AcceptedInvitees())
}

func TestRoom_Membership(t *testing.T) {
	x, y := uuid.New(), uuid.New()
	room := models.Room{
		Members: []models.User{{ID: x}, {ID: y}},
	}

	assert.True(t, room.HasMember(x))
	assert.False(t, room.HasMember(uuid.New()))
	assert.ElementsMatch(t, []uuid.UUID{x, y}, room.MemberIDs())
}
