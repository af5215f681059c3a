// Package source loads rated players from files, REST endpoints and
// synthetic generators.
package source

import (
	"context"
	"fmt"
	"slices"

	"github.com/okian/squadmaker/internal/domain/model"
)

// Source kinds accepted in configuration.
const (
	KindFile      = "file"
	KindREST      = "rest"
	KindGenerated = "generated"
	KindPostgres  = "postgres"
	KindStatic    = "static"
)

// Source supplies the pool of players to balance.
type Source interface {
	// Name identifies the source kind in logs and metrics.
	Name() string
	// Players returns a fresh slice of players. Callers may reorder it.
	Players(ctx context.Context) ([]*model.Player, error)
}

// Static serves a fixed roster.
type Static struct {
	players []*model.Player
}

// NewStatic returns a source that always yields players.
func NewStatic(players ...*model.Player) *Static {
	return &Static{players: slices.Clone(players)}
}

// Name implements Source.
func (s *Static) Name() string { return KindStatic }

// Players implements Source.
func (s *Static) Players(ctx context.Context) ([]*model.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return slices.Clone(s.players), nil
}
