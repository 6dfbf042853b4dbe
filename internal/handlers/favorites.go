package handlers

import (
	"fmt"
	"net/http"

	"holocron/internal/models"
	"holocron/internal/services"

	"github.com/gin-gonic/gin"
)

// FavoriteRequest carries the owner of the favorite. A missing user_id reads
// as 0, which never matches a user.
type FavoriteRequest struct {
	UserID uint `json:"user_id"`
}

func (h *Handler) bindFavorite(c *gin.Context, kind models.TargetKind) (services.FavoriteDTO, bool) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(badRequest(err.Error()))
		return services.FavoriteDTO{}, false
	}
	id, ok := parseID(c)
	if !ok {
		return services.FavoriteDTO{}, false
	}
	return services.FavoriteDTO{
		UserID:    req.UserID,
		Target:    models.FavoriteTarget{Kind: kind, ID: id},
		IPAddress: c.ClientIP(),
	}, true
}

func (h *Handler) AddFavorite(kind models.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		dto, ok := h.bindFavorite(c, kind)
		if !ok {
			if len(c.Errors) == 0 {
				h.respondError(c, &services.NotFoundError{Subject: "User or " + string(kind)})
			}
			return
		}
		if _, err := h.favoriteService.Add(c.Request.Context(), dto); err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"results": fmt.Sprintf("%s added to favorites", kind.Title())})
	}
}

func (h *Handler) RemoveFavorite(kind models.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		dto, ok := h.bindFavorite(c, kind)
		if !ok {
			if len(c.Errors) == 0 {
				h.respondError(c, &services.NotFoundError{Subject: "Favorite"})
			}
			return
		}
		if err := h.favoriteService.Remove(c.Request.Context(), dto); err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": fmt.Sprintf("Favorite %s removed", kind)})
	}
}
