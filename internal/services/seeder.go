package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"holocron/internal/metrics"
	"holocron/internal/models"
	"holocron/internal/pkg/distlock"
	"holocron/internal/swapi"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const seedLockKey = "seed:initial"

// Dataset is the external source of catalogue records.
type Dataset interface {
	People(ctx context.Context) ([]swapi.Person, error)
	Vehicles(ctx context.Context) ([]swapi.Vehicle, error)
	Planets(ctx context.Context) ([]swapi.Planet, error)
}

// InitialData is the full catalogue returned by the seed endpoint.
type InitialData struct {
	Characters []models.Character `json:"char_records"`
	Vehicles   []models.Vehicle   `json:"vehicles_records"`
	Planets    []models.Planet    `json:"planets_records"`
}

type SeedService struct {
	db           *gorm.DB
	logger       *slog.Logger
	dataset      Dataset
	rdb          *redis.Client
	auditService *AuditService
	lockTTL      time.Duration
	lockWait     time.Duration
	pollInterval time.Duration
	extendEvery  time.Duration
}

// NewSeedService wires seeding. rdb may be nil, in which case concurrent
// seeds are serialized within this process only.
func NewSeedService(db *gorm.DB, logger *slog.Logger, dataset Dataset, rdb *redis.Client, auditService *AuditService, lockTTL, lockWait time.Duration) *SeedService {
	return &SeedService{
		db:           db,
		logger:       logger,
		dataset:      dataset,
		rdb:          rdb,
		auditService: auditService,
		lockTTL:      lockTTL,
		lockWait:     lockWait,
		pollInterval: 100 * time.Millisecond,
		extendEvery:  lockTTL / 3,
	}
}

// LoadInitial seeds any empty catalogue table and returns all three tables.
func (s *SeedService) LoadInitial(ctx context.Context, ip string) (*InitialData, error) {
	if _, err := s.SeedIfEmpty(ctx, ip); err != nil {
		return nil, err
	}

	var data InitialData
	var err error
	if data.Characters, err = listAll[models.Character](ctx, s.db); err != nil {
		return nil, err
	}
	if data.Vehicles, err = listAll[models.Vehicle](ctx, s.db); err != nil {
		return nil, err
	}
	if data.Planets, err = listAll[models.Planet](ctx, s.db); err != nil {
		return nil, err
	}
	return &data, nil
}

// SeedIfEmpty fetches and stores every catalogue collection whose table is
// empty. It reports whether anything was fetched. Concurrent callers are
// serialized by a lock and re-check emptiness once they hold it.
func (s *SeedService) SeedIfEmpty(ctx context.Context, ip string) (bool, error) {
	pending, err := s.emptyTables(ctx)
	if err != nil {
		return false, err
	}
	if len(pending) == 0 {
		metrics.SeedRuns.WithLabelValues("skipped").Inc()
		return false, nil
	}

	lock := distlock.NewLock(s.rdb, seedLockKey, s.lockTTL)
	waitCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()
	if err := distlock.Wait(waitCtx, lock, s.pollInterval); err != nil {
		if errors.Is(err, distlock.ErrNotAcquired) {
			metrics.SeedRuns.WithLabelValues("busy").Inc()
			return false, ErrSeedBusy
		}
		return false, err
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("Failed to release seed lock", "error", err)
		}
	}()

	pending, err = s.emptyTables(ctx)
	if err != nil {
		return false, err
	}
	if len(pending) == 0 {
		metrics.SeedRuns.WithLabelValues("skipped").Inc()
		return false, nil
	}

	// Keep the lock alive while fetching; a lost lock cancels the run.
	seedCtx, cancelSeed := context.WithCancelCause(ctx)
	keepAliveDone := make(chan struct{})
	go func() {
		defer close(keepAliveDone)
		distlock.KeepAlive(seedCtx, lock, s.lockTTL, s.extendEvery, cancelSeed)
	}()
	defer func() {
		cancelSeed(nil)
		<-keepAliveDone
	}()

	s.logger.Info("Seeding catalogue from dataset", "tables", len(pending))
	counts := make(map[string]int)
	for _, seed := range pending {
		n, err := seed.run(s, seedCtx)
		if err != nil {
			if seedCtx.Err() != nil && ctx.Err() == nil {
				err = fmt.Errorf("%w: seed lock lost: %w", ErrSeedBusy, context.Cause(seedCtx))
			}
			metrics.SeedRuns.WithLabelValues("failed").Inc()
			s.logger.Error("Seeding failed", "table", seed.table, "inserted", n, "error", err)
			return true, err
		}
		counts[seed.table] = n
		if err := s.recordRun(seedCtx, seed.table, n); err != nil {
			s.logger.Warn("Failed to record seed run", "table", seed.table, "error", err)
		}
	}

	metrics.SeedRuns.WithLabelValues("seeded").Inc()
	s.logger.Info("Seeding complete", "counts", counts)
	s.auditService.LogAction(nil, ActionSeed, "catalogue", counts, ip)
	return true, nil
}

type tableSeed struct {
	table string
	model interface{}
	run   func(s *SeedService, ctx context.Context) (int, error)
}

// Seeding order follows the dataset: people, vehicles, planets.
var tableSeeds = []tableSeed{
	{table: "characters", model: &models.Character{}, run: (*SeedService).seedCharacters},
	{table: "vehicles", model: &models.Vehicle{}, run: (*SeedService).seedVehicles},
	{table: "planets", model: &models.Planet{}, run: (*SeedService).seedPlanets},
}

func (s *SeedService) emptyTables(ctx context.Context) ([]tableSeed, error) {
	var pending []tableSeed
	for _, seed := range tableSeeds {
		var count int64
		if err := s.db.WithContext(ctx).Model(seed.model).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", seed.table, err)
		}
		if count > 0 {
			continue
		}
		fetchedEmpty, err := s.fetchedEmpty(ctx, seed.table)
		if err != nil {
			return nil, err
		}
		if !fetchedEmpty {
			pending = append(pending, seed)
		}
	}
	return pending, nil
}

// fetchedEmpty reports whether the last completed fetch of table returned
// no records, so an empty table is already up to date.
func (s *SeedService) fetchedEmpty(ctx context.Context, table string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.SeedRun{}).
		Where("collection = ? AND records = 0", table).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check seed run %s: %w", table, err)
	}
	return count > 0, nil
}

func (s *SeedService) recordRun(ctx context.Context, table string, records int) error {
	run := models.SeedRun{Collection: table, Records: records, FetchedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}},
		DoUpdates: clause.AssignmentColumns([]string{"records", "fetched_at"}),
	}).Create(&run).Error
}

func (s *SeedService) seedCharacters(ctx context.Context) (int, error) {
	people, err := s.dataset.People(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch people: %w", ErrUpstream, err)
	}
	records := make([]models.Character, 0, len(people))
	for _, p := range people {
		records = append(records, models.Character{
			Name:      p.Name,
			Height:    p.Height,
			Gender:    p.Gender,
			HairColor: p.HairColor,
			EyeColor:  p.EyeColor,
		})
	}
	return insertEach(ctx, s.db, records)
}

func (s *SeedService) seedVehicles(ctx context.Context) (int, error) {
	vehicles, err := s.dataset.Vehicles(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch vehicles: %w", ErrUpstream, err)
	}
	records := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		records = append(records, models.Vehicle{
			Name:         v.Name,
			Type:         v.VehicleClass,
			Model:        v.Model,
			Manufacturer: v.Manufacturer,
		})
	}
	return insertEach(ctx, s.db, records)
}

func (s *SeedService) seedPlanets(ctx context.Context) (int, error) {
	planets, err := s.dataset.Planets(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch planets: %w", ErrUpstream, err)
	}
	records := make([]models.Planet, 0, len(planets))
	for _, p := range planets {
		records = append(records, models.Planet{
			Name:       p.Name,
			Diameter:   p.Diameter,
			Population: p.Population,
			Terrain:    p.Terrain,
		})
	}
	return insertEach(ctx, s.db, records)
}

// insertEach commits every record on its own.
func insertEach[T any](ctx context.Context, db *gorm.DB, records []T) (int, error) {
	for i := range records {
		if err := db.WithContext(ctx).Create(&records[i]).Error; err != nil {
			return i, err
		}
	}
	return len(records), nil
}
