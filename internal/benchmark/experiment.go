package benchmark

import (
	"math/rand"

	"github.com/okian/squadmaker/internal/adapters/source"
	"github.com/okian/squadmaker/internal/domain/balance"
	"github.com/okian/squadmaker/internal/domain/model"
)

// DefaultSizes are the data set sizes generated when none are given.
var DefaultSizes = []int{20, 30, 40, 50, 60, 70, 80, 90, 100}

// Experiment balances one data set into NumSquads squads with both the
// baseline and the heuristic.
type Experiment struct {
	ID        int
	Players   []*model.Player
	NumSquads int
}

// Outcome is the result of one experiment.
type Outcome struct {
	ExperimentID      int
	PlayerCount       int
	NumSquads         int
	BaselineVariance  float64
	HeuristicVariance float64
}

// DataSets generates one player set per size.
func DataSets(rng *rand.Rand, sizes []int, lo, hi int, distribution string) ([][]*model.Player, error) {
	sets := make([][]*model.Player, 0, len(sizes))
	for _, n := range sizes {
		players, err := source.GeneratePlayers(rng, n, lo, hi, distribution)
		if err != nil {
			return nil, err
		}
		sets = append(sets, players)
	}
	return sets, nil
}

// Experiments builds an experiment for every squad count from 2 up to, but
// excluding, half the data set size. Smaller sets produce no experiments.
// Single-player squads are skipped because their variance says little about
// the strategy.
func Experiments(dataSets [][]*model.Player) []Experiment {
	var out []Experiment
	for _, players := range dataSets {
		for n := 2; n < len(players)/2; n++ {
			out = append(out, Experiment{ID: len(out), Players: players, NumSquads: n})
		}
	}
	return out
}

func (e Experiment) run(baseline, heuristic balance.Strategy) (Outcome, error) {
	out := Outcome{ExperimentID: e.ID, PlayerCount: len(e.Players), NumSquads: e.NumSquads}

	var err error
	if out.BaselineVariance, err = varianceOf(baseline, e); err != nil {
		return out, err
	}
	if out.HeuristicVariance, err = varianceOf(heuristic, e); err != nil {
		return out, err
	}
	return out, nil
}

func varianceOf(strategy balance.Strategy, e Experiment) (float64, error) {
	res, err := strategy.Balance(e.NumSquads, e.Players)
	if err != nil {
		return 0, err
	}
	return AverageVariance(res.Squads)
}
