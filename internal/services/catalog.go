package services

import (
	"context"
	"errors"

	"holocron/internal/models"

	"gorm.io/gorm"
)

// CatalogService reads the seeded characters, planets and vehicles.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListCharacters(ctx context.Context) ([]models.Character, error) {
	return listAll[models.Character](ctx, s.db)
}

func (s *CatalogService) GetCharacter(ctx context.Context, id uint) (*models.Character, error) {
	return findByID[models.Character](ctx, s.db, id, models.KindCharacter.Title())
}

func (s *CatalogService) ListPlanets(ctx context.Context) ([]models.Planet, error) {
	return listAll[models.Planet](ctx, s.db)
}

func (s *CatalogService) GetPlanet(ctx context.Context, id uint) (*models.Planet, error) {
	return findByID[models.Planet](ctx, s.db, id, models.KindPlanet.Title())
}

func (s *CatalogService) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return listAll[models.Vehicle](ctx, s.db)
}

func (s *CatalogService) GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	return findByID[models.Vehicle](ctx, s.db, id, models.KindVehicle.Title())
}

// Exists reports whether the entity a favorite would point at is present.
func (s *CatalogService) Exists(ctx context.Context, target models.FavoriteTarget) (bool, error) {
	var model interface{}
	switch target.Kind {
	case models.KindCharacter:
		model = &models.Character{}
	case models.KindPlanet:
		model = &models.Planet{}
	case models.KindVehicle:
		model = &models.Vehicle{}
	default:
		return false, models.ErrInvalidFavoriteTarget
	}
	return exists(ctx, s.db, model, target.ID)
}

func listAll[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	records := make([]T, 0)
	if err := db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func findByID[T any](ctx context.Context, db *gorm.DB, id uint, subject string) (*T, error) {
	var record T
	err := db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(subject)
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func exists(ctx context.Context, db *gorm.DB, model interface{}, id uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
