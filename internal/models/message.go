package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once created. Seq is the room-local sequence that
// gives every room a single total order independent of sender clocks.
type Message struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RoomID  uuid.UUID `gorm:"not null;uniqueIndex:idx_room_seq"`
	Seq     int64     `gorm:"not null;uniqueIndex:idx_room_seq"`
	UserID    uuid.UUID `gorm:"not null"`
	Content   string    `gorm:"not null"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
	Room Room `gorm:"foreignKey:RoomID"`
}
