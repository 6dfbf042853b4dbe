package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetInitialData fills any empty catalogue table from SWAPI and returns the
// whole catalogue.
func (h *Handler) GetInitialData(c *gin.Context) {
	data, err := h.seedService.LoadInitial(c.Request.Context(), c.ClientIP())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
