package dto

import (
	"time"

	"github.com/google/uuid"
)

type InviteeRequest struct {
	UserID          string   `json:"user_id" binding:"required,uuid"`
	SimilarityScore *float64 `json:"similarity_score" binding:"omitempty,min=0,max=1"`
}

type ReasonRequest struct {
	Kind string `json:"kind" binding:"required,oneof=similar_prakrithi other"`
	Text string `json:"text"`
}

type CreateChatRequest struct {
	Kind      string           `json:"kind" binding:"required,oneof=private group"`
	GroupName string           `json:"group_name"`
	Invitees  []InviteeRequest `json:"invitees" binding:"required,min=1,dive"`
	Reason    ReasonRequest    `json:"reason" binding:"required"`
}

type RespondRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accepted rejected"`
}

type InviteeResponse struct {
	UserID          uuid.UUID `json:"user_id"`
	Username        string    `json:"username"`
	Role            string    `json:"role"`
	Status          string    `json:"status"`
	SimilarityScore *float64  `json:"similarity_score,omitempty"`
}

type ChatRequestResponse struct {
	ID         uuid.UUID         `json:"id"`
	Kind       string            `json:"kind"`
	GroupName  string            `json:"group_name,omitempty"`
	Proposer   UserInfo          `json:"proposer"`
	ReasonKind string            `json:"reason_kind"`
	ReasonText string            `json:"reason_text,omitempty"`
	Invitees   []InviteeResponse `json:"invitees"`
	RoomID     *uuid.UUID        `json:"room_id,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}
