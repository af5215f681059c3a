package service

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/okian/squadmaker/internal/adapters/repository"
	"github.com/okian/squadmaker/internal/adapters/source"
	"github.com/okian/squadmaker/internal/config"
	"github.com/okian/squadmaker/internal/domain/balance"
	"github.com/okian/squadmaker/pkg/logger"
)

// SourceFromConfig builds the player source selected by cfg.PlayerSource.
// The postgres source is migrated before it is returned.
func SourceFromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (source.Source, error) {
	switch cfg.PlayerSource {
	case source.KindFile:
		return source.NewFile(cfg.PlayersFile), nil
	case source.KindREST:
		return source.NewREST(cfg.PlayersURL, source.WithTimeout(cfg.SourceTimeout())), nil
	case source.KindGenerated:
		opts := []source.GeneratedOption{
			source.WithRatingRange(cfg.MinRating, cfg.MaxRating),
			source.WithDistribution(cfg.RatingDistribution),
		}
		if cfg.RandomSeed != 0 {
			opts = append(opts, source.WithSeed(cfg.RandomSeed))
		}
		return source.NewGenerated(cfg.GeneratedPlayers, opts...), nil
	case source.KindPostgres:
		store, err := repository.Open(cfg.DatabaseDSN, repository.WithLogger(log))
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: unknown player_source '%s'", config.ErrInvalidConfig, cfg.PlayerSource)
	}
}

// StrategyFromConfig builds the balancing strategy named by cfg.Strategy.
func StrategyFromConfig(cfg *config.Config) (balance.Strategy, error) {
	var opts []balance.Option
	if cfg.RandomSeed != 0 {
		opts = append(opts, balance.WithRand(rand.New(rand.NewSource(cfg.RandomSeed)))) //nolint:gosec // not security sensitive
	}
	return balance.New(cfg.Strategy, opts...)
}

// FromConfig builds and starts a Service from cfg. The strategy is resolved
// before the source is opened, and a source holding resources is closed if
// the service cannot start. Once started, Stop owns the source.
func FromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (*Service, error) {
	strategy, err := StrategyFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	src, err := SourceFromConfig(ctx, cfg, log.Named("source"))
	if err != nil {
		return nil, err
	}

	svc := New(
		WithLogger(log.Named("service")),
		WithSource(src),
		WithStrategy(strategy),
	)
	if err := svc.Start(ctx); err != nil {
		if closer, ok := src.(io.Closer); ok {
			_ = closer.Close()
		}
		return nil, err
	}
	return svc, nil
}
