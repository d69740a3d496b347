package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestKind string

const (
	KindPrivate RequestKind = "private"
	KindGroup   RequestKind = "group"
)

type ReasonKind string

const (
	ReasonSimilarPrakrithi ReasonKind = "similar_prakrithi"
	ReasonOther            ReasonKind = "other"
)

type InviteeStatus string

const (
	StatusPending  InviteeStatus = "pending"
	StatusAccepted InviteeStatus = "accepted"
	StatusRejected InviteeStatus = "rejected"
)

// ChatRequest is the durable record of a chat proposal. Everything except
// RoomID is immutable after creation; invitee statuses live on ChatInvitee
// rows and are mutated only by the invitee they belong to.
type ChatRequest struct {
	ID         uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Kind       RequestKind `gorm:"not null;check:kind IN ('private','group')"`
	ProposerID uuid.UUID   `gorm:"not null"`
	GroupName  string
	ReasonKind ReasonKind `gorm:"not null;check:reason_kind IN ('similar_prakrithi','other')"`
	ReasonText string
	// RoomID is set exactly once, when the request materializes into a room.
	RoomID    *uuid.UUID
	CreatedAt time.Time

	Proposer User          `gorm:"foreignKey:ProposerID"`
	Invitees []ChatInvitee `gorm:"foreignKey:RequestID"`
}

type ChatInvitee struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RequestID uuid.UUID     `gorm:"not null;uniqueIndex:idx_request_user"`
	UserID    uuid.UUID     `gorm:"not null;uniqueIndex:idx_request_user"`
	Role      Role          `gorm:"not null"`
	Status    InviteeStatus `gorm:"not null;default:'pending';check:status IN ('pending','accepted','rejected')"`
	// SimilarityScore is the prakrithi match score computed at proposal time, when applicable.
	SimilarityScore *float64
	RespondedAt     *time.Time

	User User `gorm:"foreignKey:UserID"`
}

// Invitee returns the invitee entry for userID, or nil.
func (r *ChatRequest) Invitee(userID uuid.UUID) *ChatInvitee {
	for i := range r.Invitees {
		if r.Invitees[i].UserID == userID {
			return &r.Invitees[i]
		}
	}
	return nil
}

// AcceptedInvitees returns the user IDs of every invitee that accepted.
func (r *ChatRequest) AcceptedInvitees() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Invitees))
	for _, inv := range r.Invitees {
		if inv.Status == StatusAccepted {
			ids = append(ids, inv.UserID)
		}
	}
	return ids
}
