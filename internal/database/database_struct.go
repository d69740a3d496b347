package database

import (
	"gorm.io/gorm"

	"github.com/ayurlink/chat-backend/internal/chat"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

var _ chat.Store = (*Database)(nil)
