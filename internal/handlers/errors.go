package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayurlink/chat-backend/internal/chat"
)

// respondError maps the chat error taxonomy onto HTTP statuses. Anything
// else is a persistence failure and surfaces as 500; the caller decides
// whether to retry.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch err.(type) {
	case *chat.ValidationError:
		status = http.StatusBadRequest
	case *chat.ForbiddenError:
		status = http.StatusForbidden
	case *chat.NotFoundError:
		status = http.StatusNotFound
	case *chat.InvalidStateError:
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
