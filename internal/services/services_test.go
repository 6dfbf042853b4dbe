package services

import (
	"log/slog"
	"os"
	"testing"

	"holocron/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Character, models.Planet, models.Vehicle) {
	t.Helper()
	character := models.Character{Name: "Luke Skywalker", HairColor: "blond"}
	planet := models.Planet{Name: "Tatooine"}
	vehicle := models.Vehicle{Name: "Sand Crawler"}
	for _, record := range []interface{}{&character, &planet, &vehicle} {
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("failed to seed catalog: %v", err)
		}
	}
	return character, planet, vehicle
}
