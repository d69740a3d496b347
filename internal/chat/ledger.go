package chat

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayurlink/chat-backend/internal/models"
)

// Ledger owns the lifecycle of chat requests: creation by a proposer and
// accept/reject decisions by invitees. Responses for one request are
// serialized by a per-request mutex so quorum evaluation never races.
type Ledger struct {
	store        Store
	notifier     *Notifier
	materializer *Materializer
	locks        *keyedMutex
}

func NewLedger(store Store, notifier *Notifier, materializer *Materializer) *Ledger {
	return &Ledger{
		store:        store,
		notifier:     notifier,
		materializer: materializer,
		locks:        newKeyedMutex(),
	}
}

type InviteeInput struct {
	User            *models.User
	SimilarityScore *float64
}

type Reason struct {
	Kind models.ReasonKind
	Text string
}

type CreateRequestInput struct {
	Kind      models.RequestKind
	Proposer  *models.User
	GroupName string
	Reason    Reason
	Invitees  []InviteeInput
}

// CreateRequest validates and persists a new proposal with every invitee
// pending, then notifies the invitees.
func (l *Ledger) CreateRequest(in CreateRequestInput) (*models.ChatRequest, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	req := &models.ChatRequest{
		Kind:       in.Kind,
		ProposerID: in.Proposer.ID,
		GroupName:  in.GroupName,
		ReasonKind: in.Reason.Kind,
		ReasonText: in.Reason.Text,
		CreatedAt:  time.Now(),
	}
	for _, inv := range in.Invitees {
		req.Invitees = append(req.Invitees, models.ChatInvitee{
			UserID:          inv.User.ID,
			Role:            inv.User.Role,
			Status:          models.StatusPending,
			SimilarityScore: inv.SimilarityScore,
		})
	}

	if err := l.store.CreateChatRequest(req); err != nil {
		return nil, err
	}
	req.Proposer = *in.Proposer

	l.notifier.RequestReceived(req)

	return req, nil
}

func validateCreate(in CreateRequestInput) error {
	switch in.Kind {
	case models.KindPrivate:
		if len(in.Invitees) != 1 {
			return validationf("private request needs exactly one invitee, got %d", len(in.Invitees))
		}
	case models.KindGroup:
		if len(in.Invitees) < 2 {
			return validationf("group request needs at least two invitees, got %d", len(in.Invitees))
		}
		if in.GroupName == "" {
			return &ValidationError{Reason: "group request needs a group name"}
		}
	default:
		return validationf("unknown request kind %q", in.Kind)
	}

	switch in.Reason.Kind {
	case models.ReasonSimilarPrakrithi:
	case models.ReasonOther:
		if in.Reason.Text == "" {
			return &ValidationError{Reason: "reason text is required for kind 'other'"}
		}
	default:
		return validationf("unknown reason kind %q", in.Reason.Kind)
	}

	seen := make(map[uuid.UUID]bool, len(in.Invitees))
	for _, inv := range in.Invitees {
		if inv.User.ID == in.Proposer.ID {
			return &ValidationError{Reason: "proposer cannot invite themselves"}
		}
		if seen[inv.User.ID] {
			return validationf("duplicate invitee %s", inv.User.ID)
		}
		seen[inv.User.ID] = true
	}

	return nil
}

// RespondResult is what an invitee gets back from a decision. Room is set
// when the decision materialized a room the invitee belongs to.
type RespondResult struct {
	Status models.InviteeStatus
	Room   *models.Room
}

// Respond records an invitee's accept/reject decision, notifies the other
// parties and runs the materialization check.
func (l *Ledger) Respond(requestID, userID uuid.UUID, decision models.InviteeStatus) (*RespondResult, error) {
	if decision != models.StatusAccepted && decision != models.StatusRejected {
		return nil, validationf("decision must be accepted or rejected, got %q", decision)
	}

	l.locks.Lock(requestID)
	defer l.locks.Unlock(requestID)

	req, err := l.store.GetChatRequest(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "chat request"}
		}
		return nil, err
	}

	invitee := req.Invitee(userID)
	if invitee == nil {
		return nil, forbiddenf("user %s is not invited to this request", userID)
	}
	if invitee.Status != models.StatusPending {
		return nil, &InvalidStateError{Reason: "request already answered"}
	}

	updated, err := l.store.UpdateInviteeStatus(requestID, userID, decision)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, &InvalidStateError{Reason: "request already answered"}
	}

	invitee.Status = decision
	now := time.Now()
	invitee.RespondedAt = &now

	l.notifier.RequestUpdated(req, userID, decision)

	room, err := l.materializer.TryMaterialize(req)
	if err != nil {
		return nil, err
	}

	result := &RespondResult{Status: decision}
	if room != nil && decision == models.StatusAccepted {
		result.Room = room
	}
	return result, nil
}

// GetRequest loads a request visible to userID (proposer or invitee).
func (l *Ledger) GetRequest(requestID, userID uuid.UUID) (*models.ChatRequest, error) {
	req, err := l.store.GetChatRequest(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "chat request"}
		}
		return nil, err
	}

	if req.ProposerID != userID && req.Invitee(userID) == nil {
		return nil, forbiddenf("user %s is not a party to this request", userID)
	}
	return req, nil
}
