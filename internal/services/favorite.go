package services

import (
	"context"
	"errors"
	"fmt"

	"holocron/internal/metrics"
	"holocron/internal/models"

	"gorm.io/gorm"
)

type FavoriteDTO struct {
	UserID    uint
	Target    models.FavoriteTarget
	IPAddress string // For Audit Log
}

type FavoriteService struct {
	db           *gorm.DB
	catalog      *CatalogService
	auditService *AuditService
}

func NewFavoriteService(db *gorm.DB, catalog *CatalogService, auditService *AuditService) *FavoriteService {
	return &FavoriteService{
		db:           db,
		catalog:      catalog,
		auditService: auditService,
	}
}

// Add links the user to the target. Repeated calls create repeated rows.
func (s *FavoriteService) Add(ctx context.Context, dto FavoriteDTO) (*models.Favorite, error) {
	userFound, err := exists(ctx, s.db, &models.User{}, dto.UserID)
	if err != nil {
		return nil, err
	}
	targetFound, err := s.catalog.Exists(ctx, dto.Target)
	if err != nil {
		return nil, err
	}
	if !userFound || !targetFound {
		return nil, notFound("User or " + string(dto.Target.Kind))
	}

	fav := models.NewFavorite(dto.UserID, dto.Target)
	if err := s.db.WithContext(ctx).Create(&fav).Error; err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}

	metrics.Favorites.WithLabelValues(string(dto.Target.Kind), "add").Inc()
	s.auditService.LogAction(&dto.UserID, ActionAddFavorite, entityID(dto.Target), nil, dto.IPAddress)

	return &fav, nil
}

// Remove deletes the first favorite, by id, linking the user to the target.
func (s *FavoriteService) Remove(ctx context.Context, dto FavoriteDTO) error {
	if _, ok := models.ParseTargetKind(string(dto.Target.Kind)); !ok {
		return models.ErrInvalidFavoriteTarget
	}

	db := s.db.WithContext(ctx)

	var fav models.Favorite
	err := db.Where("user_id = ?", dto.UserID).
		Where(dto.Target.Kind.Column()+" = ?", dto.Target.ID).
		Order("id").
		First(&fav).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("Favorite")
	}
	if err != nil {
		return err
	}

	if err := db.Delete(&fav).Error; err != nil {
		return fmt.Errorf("delete favorite %d: %w", fav.ID, err)
	}

	metrics.Favorites.WithLabelValues(string(dto.Target.Kind), "remove").Inc()
	s.auditService.LogAction(&dto.UserID, ActionRemoveFavorite, entityID(dto.Target), map[string]uint{"favorite_id": fav.ID}, dto.IPAddress)

	return nil
}

// ListForUser returns the user's favorites with their raw foreign keys.
func (s *FavoriteService) ListForUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	found, err := exists(ctx, s.db, &models.User{}, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound("User")
	}

	favorites := make([]models.Favorite, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

func entityID(target models.FavoriteTarget) string {
	return fmt.Sprintf("%s:%d", target.Kind, target.ID)
}
