package balance

import (
	"slices"
	"sort"

	"github.com/okian/squadmaker/internal/domain/model"
	"github.com/okian/squadmaker/internal/domain/scoring"
)

// MinimizeDelta builds squads that minimize each squad's cumulative delta
// from the population mean.
//
// Algorithm:
//  1. Score every player against the population means and sort by
//     cumulative delta, largest first (ties keep input order).
//  2. Move the leading players that prevent even division to the waiting
//     list; these are the biggest outliers.
//  3. If any players were moved, re-score the rest against the means of the
//     reduced pool and re-sort. This happens once, not until a fixed point.
//  4. Seed each squad with one of the leading remaining players.
//  5. Round-robin through the squads, appending to each the remaining player
//     that yields the lowest squad cumulative delta. The first candidate in
//     pool order wins ties.
type MinimizeDelta struct{}

var _ Strategy = (*MinimizeDelta)(nil)

// NewMinimizeDelta creates the heuristic strategy.
func NewMinimizeDelta() *MinimizeDelta {
	return &MinimizeDelta{}
}

// Name implements Strategy.
func (*MinimizeDelta) Name() string { return MinimizeDeltaName }

// Balance implements Strategy.
func (*MinimizeDelta) Balance(numSquads int, players []*model.Player) (Result, error) {
	if err := Validate(numSquads, players); err != nil {
		return Result{}, err
	}
	if numSquads == len(players) {
		return singletons(players), nil
	}

	pool, err := scoreSorted(players)
	if err != nil {
		return Result{}, err
	}

	perSquad := PlayersPerSquad(numSquads, len(players))
	outliers := len(players) - perSquad*numSquads
	waitingList := scoring.Players(pool[:outliers])
	pool = pool[outliers:]

	if outliers > 0 {
		// the waiting list must not influence the means used for the rest
		pool, err = scoreSorted(scoring.Players(pool))
		if err != nil {
			return Result{}, err
		}
	}

	squads := make([]*scoring.ScoredSquad, numSquads)
	for i := range squads {
		squads[i] = scoring.NewScoredSquad(pool[i])
	}
	pool = pool[numSquads:]

	for len(pool) > 0 {
		for _, squad := range squads {
			if len(pool) == 0 {
				break
			}
			best := bestFit(squad, pool)
			squad.Add(pool[best])
			pool = slices.Delete(pool, best, best+1)
		}
	}

	out := make([]*model.Squad, numSquads)
	for i, s := range squads {
		out[i] = s.Squad()
	}
	return Result{Squads: out, WaitingList: waitingList}, nil
}

// scoreSorted scores players against their own means and orders them by
// cumulative delta, largest first.
func scoreSorted(players []*model.Player) ([]scoring.ScoredPlayer, error) {
	scored, _, err := scoring.ScorePlayers(players)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CumulativeDelta() > scored[j].CumulativeDelta()
	})
	return scored, nil
}

// bestFit returns the index of the candidate that minimizes the squad's
// cumulative delta once appended. Strictly smaller scores win, so the first
// candidate encountered keeps a tie.
func bestFit(squad *scoring.ScoredSquad, candidates []scoring.ScoredPlayer) int {
	sums := squad.DeltaSums()
	best := 0
	lowest := sums.Plus(candidates[0].Deltas).Cumulative()
	for i := 1; i < len(candidates); i++ {
		if d := sums.Plus(candidates[i].Deltas).Cumulative(); d < lowest {
			best, lowest = i, d
		}
	}
	return best
}
