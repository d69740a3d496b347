package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleExpert Role = "expert"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         Role      `gorm:"not null;default:'user';check:role IN ('user','expert')"`
	// AvatarURL is a stable URL handed to us by the upload pipeline; raw bytes never land here.
	AvatarURL  string
	Prakrithi  string
	LastSeenAt time.Time
	CreatedAt  time.Time
}
