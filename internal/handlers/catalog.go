package handlers

import (
	"context"
	"net/http"
	"strconv"

	"holocron/internal/services"

	"github.com/gin-gonic/gin"
)

// parseID reads the :id path parameter. Anything that is not an unsigned
// integer is reported as a miss by the caller.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func listHandler[T any](h *Handler, list func(context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := list(c.Request.Context())
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": records})
	}
}

func getHandler[T any](h *Handler, subject string, get func(context.Context, uint) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			h.respondError(c, &services.NotFoundError{Subject: subject})
			return
		}
		record, err := get(c.Request.Context(), id)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": record})
	}
}

func (h *Handler) ListCharacters() gin.HandlerFunc {
	return listHandler(h, h.catalogService.ListCharacters)
}

func (h *Handler) GetCharacter() gin.HandlerFunc {
	return getHandler(h, "Character", h.catalogService.GetCharacter)
}

func (h *Handler) ListPlanets() gin.HandlerFunc {
	return listHandler(h, h.catalogService.ListPlanets)
}

func (h *Handler) GetPlanet() gin.HandlerFunc {
	return getHandler(h, "Planet", h.catalogService.GetPlanet)
}

func (h *Handler) ListVehicles() gin.HandlerFunc {
	return listHandler(h, h.catalogService.ListVehicles)
}

func (h *Handler) GetVehicle() gin.HandlerFunc {
	return getHandler(h, "Vehicle", h.catalogService.GetVehicle)
}
