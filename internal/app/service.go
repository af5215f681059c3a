// Package service provides the core business service that implements
// the dependencies required by the HTTP API and site.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/okian/squadmaker/internal/adapters/source"
	"github.com/okian/squadmaker/internal/domain/balance"
	"github.com/okian/squadmaker/internal/domain/model"
	"github.com/okian/squadmaker/pkg/logger"
	"github.com/okian/squadmaker/pkg/metrics"
)

// Balance outcomes used as metric labels.
const (
	outcomeOK             = "ok"
	outcomeInvalidRequest = "invalid_request"
	outcomeError          = "error"
)

// Service loads players from a source and builds squads with a strategy.
type Service struct {
	mu sync.RWMutex

	source   source.Source
	strategy balance.Strategy

	started bool

	// Counters reported by GetStats
	lastSourced     int
	balanceRequests int
	squadsBuilt     int
	lastWaitingList int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets the player source.
func WithSource(src source.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithStrategy replaces the default minimize-delta strategy.
func WithStrategy(strategy balance.Strategy) Option {
	return func(s *Service) {
		if strategy != nil {
			s.strategy = strategy
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		strategy: balance.NewMinimizeDelta(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start validates the wiring and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.source == nil {
		return ErrNoSource
	}

	s.started = true
	s.logger.Info(ctx, "squad maker service started",
		logger.String("source", s.source.Name()),
		logger.String("strategy", s.strategy.Name()),
	)
	return nil
}

// Stop releases the source, if it holds resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if closer, ok := s.source.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.logger.Warn(context.Background(), "failed to close player source", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "squad maker service stopped")
}

// Players returns every sourced player, highest total rating first.
func (s *Service) Players(ctx context.Context) ([]*model.Player, error) {
	players, err := s.loadPlayers(ctx)
	if err != nil {
		return nil, err
	}
	return model.SortByTotalRating(players), nil
}

// MakeSquads balances the sourced players into numSquads squads. Squad
// members and the waiting list are ordered by total rating, highest first.
// Invalid requests are reported as balance.ErrInvalidRequest.
func (s *Service) MakeSquads(ctx context.Context, numSquads int) (balance.Result, error) {
	players, err := s.loadPlayers(ctx)
	if err != nil {
		return balance.Result{}, err
	}

	strategy := s.strategy.Name()
	start := time.Now()
	res, err := s.strategy.Balance(numSquads, players)
	metrics.RecordBalanceLatency(strategy, float64(time.Since(start).Microseconds())/1000)

	if err != nil {
		if errors.Is(err, balance.ErrInvalidRequest) {
			metrics.RecordBalanceRequest(strategy, outcomeInvalidRequest)
			s.logger.Info(ctx, "rejected squad request", logger.Error(err))
		} else {
			metrics.RecordBalanceRequest(strategy, outcomeError)
			s.logger.Error(ctx, "failed to build squads", logger.Error(err))
		}
		return balance.Result{}, err
	}

	s.logger.Info(ctx, fmt.Sprintf("Built %d squads with %d players on the waiting list", len(res.Squads), len(res.WaitingList)),
		logger.String("strategy", strategy),
	)
	metrics.RecordBalanceRequest(strategy, outcomeOK)
	metrics.RecordSquadsBuilt(strategy, len(res.Squads))
	metrics.UpdateWaitingListSize(len(res.WaitingList))

	s.mu.Lock()
	s.balanceRequests++
	s.squadsBuilt += len(res.Squads)
	s.lastWaitingList = len(res.WaitingList)
	s.mu.Unlock()

	return presentation(res), nil
}

func (s *Service) loadPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	started, src := s.started, s.source
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}

	players, err := src.Players(ctx)
	if err != nil {
		metrics.RecordSourceError(src.Name())
		s.logger.Error(ctx, "failed to source players",
			logger.String("source", src.Name()),
			logger.Error(err),
		)
		return nil, err
	}

	s.logger.Info(ctx, fmt.Sprintf("Sourced data for %d players", len(players)), logger.String("source", src.Name()))
	metrics.UpdatePlayersSourced(src.Name(), len(players))

	s.mu.Lock()
	s.lastSourced = len(players)
	s.mu.Unlock()

	return players, nil
}

// presentation orders squad members and the waiting list by total rating.
func presentation(res balance.Result) balance.Result {
	out := balance.Result{
		Squads:      make([]*model.Squad, len(res.Squads)),
		WaitingList: model.SortByTotalRating(res.WaitingList),
	}
	for i, sq := range res.Squads {
		out.Squads[i] = model.NewSquad(model.SortByTotalRating(sq.Players())...)
	}
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"strategy":        s.strategy.Name(),
		"playersSourced":  s.lastSourced,
		"balanceRequests": s.balanceRequests,
		"squadsBuilt":     s.squadsBuilt,
		"waitingList":     s.lastWaitingList,
	}
	if s.source != nil {
		stats["source"] = s.source.Name()
	}
	return stats
}
