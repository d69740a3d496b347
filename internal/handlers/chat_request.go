package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/ayurlink/chat-backend/internal/chat"
	"github.com/ayurlink/chat-backend/internal/database"
	"github.com/ayurlink/chat-backend/internal/handlers/dto"
	"github.com/ayurlink/chat-backend/internal/middleware"
	"github.com/ayurlink/chat-backend/internal/models"
)

type ChatRequestHandler struct {
	db     *database.Database
	ledger *chat.Ledger
}

func NewChatRequestHandler(db *database.Database, ledger *chat.Ledger) *ChatRequestHandler {
	return &ChatRequestHandler{db: db, ledger: ledger}
}

// Create proposes a new private or group chat.
func (h *ChatRequestHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposer, err := h.db.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	invitees := make([]chat.InviteeInput, 0, len(req.Invitees))
	for _, inv := range req.Invitees {
		invID, err := uuid.Parse(inv.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invitee id"})
			return
		}
		user, err := h.db.GetUser(invID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown invitee " + inv.UserID})
			return
		}
		invitees = append(invitees, chat.InviteeInput{
			User:            user,
			SimilarityScore: inv.SimilarityScore,
		})
	}

	created, err := h.ledger.CreateRequest(chat.CreateRequestInput{
		Kind:      models.RequestKind(req.Kind),
		Proposer:  proposer,
		GroupName: req.GroupName,
		Reason: chat.Reason{
			Kind: models.ReasonKind(req.Reason.Kind),
			Text: req.Reason.Text,
		},
		Invitees: invitees,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, formatChatRequest(created))
}

// Respond records the caller's accept/reject decision.
func (h *ChatRequestHandler) Respond(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req dto.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.ledger.Respond(requestID, userID, models.InviteeStatus(req.Decision))
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{"status": result.Status}
	if result.Room != nil {
		response["room"] = gin.H{
			"id":         result.Room.ID,
			"is_group":   result.Room.IsGroup,
			"group_name": result.Room.GroupName,
		}
	}

	c.JSON(http.StatusOK, response)
}

// List returns the caller's proposals and invitations, newest first.
func (h *ChatRequestHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	requests, err := h.db.GetRequestsForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get chat requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": lo.Map(requests, func(req models.ChatRequest, _ int) dto.ChatRequestResponse {
			return formatChatRequest(&req)
		}),
	})
}

// Get returns one request the caller is a party to.
func (h *ChatRequestHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	req, err := h.ledger.GetRequest(requestID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, formatChatRequest(req))
}

func formatChatRequest(req *models.ChatRequest) dto.ChatRequestResponse {
	return dto.ChatRequestResponse{
		ID:        req.ID,
		Kind:      string(req.Kind),
		GroupName: req.GroupName,
		Proposer: dto.UserInfo{
			ID:        req.Proposer.ID,
			Username:  req.Proposer.Username,
			Role:      string(req.Proposer.Role),
			AvatarURL: req.Proposer.AvatarURL,
		},
		ReasonKind: string(req.ReasonKind),
		ReasonText: req.ReasonText,
		Invitees: lo.Map(req.Invitees, func(inv models.ChatInvitee, _ int) dto.InviteeResponse {
			return dto.InviteeResponse{
				UserID:          inv.UserID,
				Username:        inv.User.Username,
				Role:            string(inv.Role),
				Status:          string(inv.Status),
				SimilarityScore: inv.SimilarityScore,
			}
		}),
		RoomID:    req.RoomID,
		CreatedAt: req.CreatedAt,
	}
}
