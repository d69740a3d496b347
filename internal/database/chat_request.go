package database

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayurlink/chat-backend/internal/models"
)

func (d *Database) CreateChatRequest(req *models.ChatRequest) error {
	return d.db.Create(req).Error
}

func (d *Database) GetChatRequest(id uuid.UUID) (*models.ChatRequest, error) {
	var req models.ChatRequest
	err := d.db.
		Preload("Proposer").
		Preload("Invitees").
		Preload("Invitees.User").
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateInviteeStatus flips one invitee entry from pending to a terminal
// status. The WHERE guard makes a lost double-respond race visible as
// zero affected rows.
func (d *Database) UpdateInviteeStatus(requestID, userID uuid.UUID, status models.InviteeStatus) (bool, error) {
	res := d.db.Model(&models.ChatInvitee{}).
		Where("request_id = ? AND user_id = ? AND status = ?", requestID, userID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// LinkRoom sets the request's room reference once. The IS NULL guard
// keeps the unset-to-set transition monotonic.
func (d *Database) LinkRoom(requestID, roomID uuid.UUID) (bool, error) {
	res := d.db.Model(&models.ChatRequest{}).
		Where("id = ? AND room_id IS NULL", requestID).
		Update("room_id", roomID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetRequestsForUser returns requests the user proposed plus requests the
// user is invited to, newest first.
func (d *Database) GetRequestsForUser(userID uuid.UUID) ([]models.ChatRequest, error) {
	var requests []models.ChatRequest
	err := d.db.
		Preload("Proposer").
		Preload("Invitees").
		Preload("Invitees.User").
		Where("proposer_id = ?", userID).
		Or("id IN (?)", d.db.Model(&models.ChatInvitee{}).Select("request_id").Where("user_id = ?", userID)).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
