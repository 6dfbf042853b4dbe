package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"holocron/internal/models"

	"gorm.io/gorm"
)

const (
	ActionCreateUser     = "CREATE_USER"
	ActionAddFavorite    = "ADD_FAVORITE"
	ActionRemoveFavorite = "REMOVE_FAVORITE"
	ActionSeed           = "SEED"
)

// AuditService records actions asynchronously. Entries are buffered and
// written by the worker started with Start; a full buffer drops entries.
type AuditService struct {
	db      *gorm.DB
	logger  *slog.Logger
	entries chan models.AuditLog
}

func NewAuditService(db *gorm.DB, logger *slog.Logger) *AuditService {
	return &AuditService{
		db:      db,
		logger:  logger,
		entries: make(chan models.AuditLog, 100),
	}
}

func (s *AuditService) Start(ctx context.Context) {
	s.logger.Info("Audit worker starting")
	for {
		select {
		case entry := <-s.entries:
			s.write(entry)
		case <-ctx.Done():
			// Flush what is already queued.
			for {
				select {
				case entry := <-s.entries:
					s.write(entry)
				default:
					s.logger.Info("Audit worker stopping")
					return
				}
			}
		}
	}
}

func (s *AuditService) write(entry models.AuditLog) {
	if err := s.db.Create(&entry).Error; err != nil {
		s.logger.Error("Failed to write audit log", "action", entry.Action, "error", err)
	}
}

func (s *AuditService) LogAction(userID *uint, action, entityID string, details interface{}, ip string) {
	var detailText string
	if details != nil {
		detailBytes, _ := json.Marshal(details)
		detailText = string(detailBytes)
	}

	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		EntityID:  entityID,
		Details:   detailText,
		IPAddress: ip,
		Timestamp: time.Now(),
	}

	select {
	case s.entries <- entry:
	default:
		s.logger.Warn("Audit channel full, dropping log", "action", action)
	}
}
