package services

import (
	"context"
	"errors"
	"fmt"

	"holocron/internal/models"
	"holocron/pkg/utils"

	"gorm.io/gorm"
)

type CreateUserDTO struct {
	Username  string
	Email     string
	Password  string
	IPAddress string // For Audit Log
}

type UserService struct {
	db           *gorm.DB
	auditService *AuditService
	hash         func(string) (string, error)
}

func NewUserService(db *gorm.DB, auditService *AuditService) *UserService {
	return &UserService{
		db:           db,
		auditService: auditService,
		hash:         utils.HashPassword,
	}
}

// CreateUser stores a new user with a hashed password and returns it as
// re-read from the database.
func (s *UserService) CreateUser(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	db := s.db.WithContext(ctx)

	var existing models.User
	err := db.Where("username = ? OR email = ?", dto.Username, dto.Email).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := s.hash(dto.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser := models.User{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: passwordHash,
	}
	if err := db.Create(&newUser).Error; err != nil {
		// Lost a race with a concurrent insert of the same name.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	var created models.User
	err = db.Preload("Favorites").Where("username = ?", dto.Username).First(&created).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotCreated
	}
	if err != nil {
		return nil, err
	}

	s.auditService.LogAction(&created.ID, ActionCreateUser, created.Username, nil, dto.IPAddress)

	return &created, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := s.db.WithContext(ctx).Preload("Favorites", orderByID).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Favorites", orderByID).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("User")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
