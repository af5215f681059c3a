package repository

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/okian/squadmaker/internal/adapters/source"
	"github.com/okian/squadmaker/internal/domain/model"
	"github.com/okian/squadmaker/pkg/logger"
)

const saveBatchSize = 100

// PostgresStore reads and writes players in the players table. It is a
// source.Source.
type PostgresStore struct {
	db *gorm.DB
}

// Open connects to dsn.
func Open(dsn string, opts ...Option) (*PostgresStore, error) {
	o := newOptions(opts)

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: dsn}), &gorm.Config{
		Logger: gormlogger.New(gormWriter{log: o.log}, gormlogger.Config{
			SlowThreshold:             o.slowThreshold,
			LogLevel:                  o.logLevel,
			IgnoreRecordNotFoundError: true,
		}),
		DryRun:               o.dryRun,
		DisableAutomaticPing: o.dryRun,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %w", source.ErrSourceUnavailable, err)
	}

	if !o.dryRun {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("%w: database handle: %w", source.ErrSourceUnavailable, err)
		}
		sqlDB.SetConnMaxIdleTime(defaultConnMaxIdleTime)
		sqlDB.SetConnMaxLifetime(defaultConnMaxLifetime)
	}

	return NewPostgresStore(db), nil
}

// NewPostgresStore wraps an existing gorm handle.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates or updates the players table.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&PlayerRecord{}); err != nil {
		return fmt.Errorf("%w: migrate: %w", source.ErrSourceUnavailable, err)
	}
	return nil
}

// Name implements source.Source.
func (s *PostgresStore) Name() string { return source.KindPostgres }

// Players implements source.Source, returning players in insertion order.
func (s *PostgresStore) Players(ctx context.Context) ([]*model.Player, error) {
	var records []PlayerRecord
	if err := s.playersQuery(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: query players: %w", source.ErrSourceUnavailable, err)
	}

	players := make([]*model.Player, 0, len(records))
	for _, r := range records {
		p, err := r.toPlayer()
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func (s *PostgresStore) playersQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&PlayerRecord{}).Order("seq")
}

// SavePlayers upserts players by ID. Existing rows keep their position.
func (s *PostgresStore) SavePlayers(ctx context.Context, players []*model.Player) error {
	if len(players) == 0 {
		return nil
	}
	records := make([]PlayerRecord, len(players))
	for i, p := range players {
		records[i] = toRecord(p)
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "skating", "shooting", "checking", "updated_at"}),
		}).
		CreateInBatches(&records, saveBatchSize).Error
	if err != nil {
		return fmt.Errorf("%w: save players: %w", source.ErrSourceUnavailable, err)
	}
	return nil
}

// Count returns the number of stored players.
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&PlayerRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: count players: %w", source.ErrSourceUnavailable, err)
	}
	return n, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormWriter adapts the service logger to gorm's logger.Writer.
type gormWriter struct {
	log logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Info(context.Background(), fmt.Sprintf(format, args...))
}
