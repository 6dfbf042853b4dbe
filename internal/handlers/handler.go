package handlers

import (
	"log/slog"

	"holocron/internal/services"

	"gorm.io/gorm"
)

type Handler struct {
	logger          *slog.Logger
	db              *gorm.DB
	userService     *services.UserService
	catalogService  *services.CatalogService
	favoriteService *services.FavoriteService
	seedService     *services.SeedService
}

func NewHandler(
	logger *slog.Logger,
	db *gorm.DB,
	userService *services.UserService,
	catalogService *services.CatalogService,
	favoriteService *services.FavoriteService,
	seedService *services.SeedService,
) *Handler {
	return &Handler{
		logger:          logger,
		db:              db,
		userService:     userService,
		catalogService:  catalogService,
		favoriteService: favoriteService,
		seedService:     seedService,
	}
}
