package database

import (
	"github.com/google/uuid"

	"github.com/ayurlink/chat-backend/internal/models"
)

func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

func (d *Database) LatestSeq(roomID uuid.UUID) (int64, error) {
	var seq int64
	err := d.db.Model(&models.Message{}).
		Where("room_id = ?", roomID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&seq).Error
	return seq, err
}

// GetRoomMessages returns up to limit messages of the room in sequence
// order, optionally only those older than beforeSeq.
func (d *Database) GetRoomMessages(roomID uuid.UUID, limit int, beforeSeq *int64) ([]models.Message, error) {
	var messages []models.Message

	query := d.db.Where("room_id = ?", roomID)
	if beforeSeq != nil {
		query = query.Where("seq < ?", *beforeSeq)
	}

	err := query.
		Order("seq DESC").
		Limit(limit).
		Preload("User").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Oldest first for the client
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
