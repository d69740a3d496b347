package database

import (
	"github.com/google/uuid"

	"github.com/ayurlink/chat-backend/internal/models"
)

func (d *Database) CreateRoom(room *models.Room) error {
	return d.db.Create(room).Error
}

func (d *Database) GetRoom(id uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := d.db.Preload("Members").First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (d *Database) AddRoomMember(roomID, userID uuid.UUID) error {
	var user models.User
	if err := d.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	var room models.Room
	if err := d.db.First(&room, "id = ?", roomID).Error; err != nil {
		return err
	}

	return d.db.Model(&room).Association("Members").Append(&user)
}

func (d *Database) GetUserRooms(userID uuid.UUID) ([]models.Room, error) {
	var rooms []models.Room
	err := d.db.
		Joins("JOIN room_members rm ON rm.room_id = rooms.id").
		Where("rm.user_id = ?", userID).
		Order("rooms.created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}

	for i := range rooms {
		if err := d.db.Model(&rooms[i]).Association("Members").Find(&rooms[i].Members); err != nil {
			return nil, err
		}
	}

	return rooms, nil
}
