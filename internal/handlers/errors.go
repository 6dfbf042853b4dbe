package handlers

import (
	"errors"
	"net/http"

	"holocron/internal/services"

	"github.com/gin-gonic/gin"
)

// APIError is rendered as {"message": ..., "status_code": ...} by the
// ErrorHandler middleware when attached with c.Error.
type APIError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func (e *APIError) Error() string {
	return e.Message
}

func badRequest(message string) *APIError {
	return &APIError{Message: message, StatusCode: http.StatusBadRequest}
}

// respondError maps service errors onto the {"error": ...} envelope.
func (h *Handler) respondError(c *gin.Context, err error) {
	var nf *services.NotFoundError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	case errors.Is(err, services.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
	case errors.Is(err, services.ErrUserNotCreated):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User was not created"})
	case errors.Is(err, services.ErrUpstream):
		h.logger.Error("Upstream dataset failure", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream dataset unavailable"})
	case errors.Is(err, services.ErrSeedBusy):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Seeding in progress, retry later"})
	default:
		h.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
