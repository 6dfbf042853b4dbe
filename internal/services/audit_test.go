package services

import (
	"context"
	"testing"
	"time"

	"holocron/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAuditService(t *testing.T) {
	db := setupTestDB(t)
	logger := testLogger()
	service := NewAuditService(db, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.Start(ctx)

	t.Run("Log Action", func(t *testing.T) {
		userID := uint(1)
		service.LogAction(&userID, "TEST_ACTION", "entity_1", map[string]string{"foo": "bar"}, "127.0.0.1")

		var log models.AuditLog
		assert.Eventually(t, func() bool {
			return db.First(&log).Error == nil
		}, time.Second, 10*time.Millisecond)
		assert.Equal(t, "TEST_ACTION", log.Action)
		assert.Equal(t, "entity_1", log.EntityID)
		assert.Contains(t, log.Details, "foo")
	})

	t.Run("Nil details stay empty", func(t *testing.T) {
		service.LogAction(nil, "NO_DETAILS", "entity_2", nil, "127.0.0.1")

		var log models.AuditLog
		assert.Eventually(t, func() bool {
			return db.Where("action = ?", "NO_DETAILS").First(&log).Error == nil
		}, time.Second, 10*time.Millisecond)
		assert.Empty(t, log.Details)
		assert.Nil(t, log.UserID)
	})

	t.Run("Channel Full", func(t *testing.T) {
		service := NewAuditService(db, logger)
		// Fill channel
		for i := 0; i < 100; i++ {
			service.LogAction(nil, "ACTION", "ID", nil, "IP")
		}
		// Should drop
		service.LogAction(nil, "DROP", "ID", nil, "IP")
		assert.Len(t, service.entries, 100)
	})

	t.Run("Flushes queued entries on stop", func(t *testing.T) {
		service := NewAuditService(db, logger)
		service.LogAction(nil, "QUEUED", "ID", nil, "IP")

		stopped, stop := context.WithCancel(context.Background())
		stop()
		service.Start(stopped)

		var count int64
		db.Model(&models.AuditLog{}).Where("action = ?", "QUEUED").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("DB Error", func(t *testing.T) {
		dbErr := setupTestDB(t)
		dbErr.Migrator().DropTable(&models.AuditLog{})
		serviceErr := NewAuditService(dbErr, logger)

		ctxErr, cancelErr := context.WithCancel(context.Background())
		go serviceErr.Start(ctxErr)

		serviceErr.LogAction(nil, "ERROR", "ID", nil, "IP")
		time.Sleep(100 * time.Millisecond)
		cancelErr()
	})
}
