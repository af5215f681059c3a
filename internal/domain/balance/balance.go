// Package balance splits a pool of players into evenly matched squads.
package balance

import (
	"fmt"
	"slices"

	"github.com/okian/squadmaker/internal/domain/model"
)

// Strategy names accepted by New.
const (
	MinimizeDeltaName = "minimize-delta"
	RandomName        = "random"
)

// Result is the outcome of a balancing call. Every input player appears
// exactly once, either in one squad or on the waiting list.
type Result struct {
	Squads      []*model.Squad
	WaitingList []*model.Player
}

// Strategy builds numSquads equally sized squads from players.
type Strategy interface {
	// Name identifies the strategy in logs and metrics.
	Name() string

	// Balance returns an error wrapping ErrInvalidRequest when numSquads or
	// the number of players make the request impossible.
	Balance(numSquads int, players []*model.Player) (Result, error)
}

// New returns the strategy registered under name.
func New(name string, opts ...Option) (Strategy, error) {
	o := newOptions(opts...)
	switch name {
	case "", MinimizeDeltaName:
		return NewMinimizeDelta(), nil
	case RandomName:
		return NewRandom(o.rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Names lists the registered strategies.
func Names() []string {
	return []string{MinimizeDeltaName, RandomName}
}

// Validate checks a balancing request before any work is done.
func Validate(numSquads int, players []*model.Player) error {
	switch {
	case numSquads == 0:
		return fmt.Errorf("%w: you must build at least one squad", ErrInvalidRequest)
	case numSquads < 0:
		return fmt.Errorf("%w: you cannot build a negative number of squads", ErrInvalidRequest)
	case PlayersPerSquad(numSquads, len(players)) < 1:
		return fmt.Errorf("%w: there are not enough players to build %d squads: you have %d players but need at least %d players",
			ErrInvalidRequest, numSquads, len(players), numSquads)
	}
	return nil
}

// PlayersPerSquad is the size every squad will have. numSquads must be positive.
func PlayersPerSquad(numSquads, playerCount int) int {
	return playerCount / numSquads
}

// singletons handles numSquads == len(players): one player per squad, no waiting list.
func singletons(players []*model.Player) Result {
	squads := make([]*model.Squad, len(players))
	for i, p := range players {
		squads[i] = model.NewSquad(p)
	}
	return Result{Squads: squads, WaitingList: []*model.Player{}}
}

// partition cuts ordered players into numSquads contiguous squads of size each;
// whatever is left goes to the waiting list.
func partition(ordered []*model.Player, numSquads, size int) Result {
	squads := make([]*model.Squad, numSquads)
	for i := range squads {
		squads[i] = model.NewSquad(ordered[i*size : (i+1)*size]...)
	}
	return Result{
		Squads:      squads,
		WaitingList: slices.Clone(ordered[numSquads*size:]),
	}
}
