// Package scoring computes how far players and squads deviate from the
// population average, skill by skill.
package scoring

import (
	"math"

	"github.com/okian/squadmaker/internal/domain/model"
)

// Means holds the population mean of each skill.
type Means [model.SkillCount]float64

// MeanRatings returns the arithmetic mean of every skill across players.
func MeanRatings(players []*model.Player) (Means, error) {
	if len(players) == 0 {
		return Means{}, ErrNoPlayers
	}
	var m Means
	for _, p := range players {
		for _, s := range model.Skills() {
			m[s] += float64(p.Rating(s))
		}
	}
	n := float64(len(players))
	for s := range m {
		m[s] /= n
	}
	return m, nil
}

// Deltas are signed per-skill deviations from a reference mean.
type Deltas [model.SkillCount]float64

// Cumulative sums the absolute value of every delta.
func (d Deltas) Cumulative() float64 {
	var sum float64
	for _, v := range d {
		sum += math.Abs(v)
	}
	return sum
}

// Plus returns the element-wise sum of d and o.
func (d Deltas) Plus(o Deltas) Deltas {
	for i := range d {
		d[i] += o[i]
	}
	return d
}

// ScoredPlayer annotates a player with its deviation from a given set of means.
type ScoredPlayer struct {
	Player *model.Player
	Deltas Deltas
}

// Score computes p's deviation from m. Scores are always derived from the
// base player so re-scoring against new means never compounds.
func Score(p *model.Player, m Means) ScoredPlayer {
	sp := ScoredPlayer{Player: p}
	for _, s := range model.Skills() {
		sp.Deltas[s] = float64(p.Rating(s)) - m[s]
	}
	return sp
}

// Delta returns the signed deviation for skill s.
func (sp ScoredPlayer) Delta(s model.Skill) float64 { return sp.Deltas[s] }

// CumulativeDelta is the player's total absolute deviation. Larger means
// further from a perfectly average player.
func (sp ScoredPlayer) CumulativeDelta() float64 { return sp.Deltas.Cumulative() }

// ScorePlayers computes the means of players and scores each of them against
// those means, preserving input order.
func ScorePlayers(players []*model.Player) ([]ScoredPlayer, Means, error) {
	m, err := MeanRatings(players)
	if err != nil {
		return nil, Means{}, err
	}
	scored := make([]ScoredPlayer, len(players))
	for i, p := range players {
		scored[i] = Score(p, m)
	}
	return scored, m, nil
}

// Players unwraps scored players back to their base players.
func Players(scored []ScoredPlayer) []*model.Player {
	players := make([]*model.Player, len(scored))
	for i, sp := range scored {
		players[i] = sp.Player
	}
	return players
}
