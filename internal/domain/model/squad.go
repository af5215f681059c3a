package model

import (
	"slices"
	"sort"
)

// Squad is an ordered group of players.
type Squad struct {
	players []*Player
}

// NewSquad creates a squad holding the given players in order.
func NewSquad(players ...*Player) *Squad {
	return &Squad{players: slices.Clone(players)}
}

// Add appends p to the squad.
func (s *Squad) Add(p *Player) {
	s.players = append(s.players, p)
}

// Players returns the members in order. The returned slice is a copy.
func (s *Squad) Players() []*Player {
	return slices.Clone(s.players)
}

// Len returns the number of members.
func (s *Squad) Len() int { return len(s.players) }

// Average returns the mean rating for skill across members. ok is false for
// an empty squad.
func (s *Squad) Average(skill Skill) (avg float64, ok bool) {
	if len(s.players) == 0 {
		return 0, false
	}
	var sum float64
	for _, p := range s.players {
		sum += float64(p.Rating(skill))
	}
	return sum / float64(len(s.players)), true
}

// SkatingAverage returns the mean skating rating.
func (s *Squad) SkatingAverage() (float64, bool) { return s.Average(Skating) }

// ShootingAverage returns the mean shooting rating.
func (s *Squad) ShootingAverage() (float64, bool) { return s.Average(Shooting) }

// CheckingAverage returns the mean checking rating.
func (s *Squad) CheckingAverage() (float64, bool) { return s.Average(Checking) }

// SortByTotalRating returns a copy of players ordered by total rating,
// highest first. Equal totals keep their relative order.
func SortByTotalRating(players []*Player) []*Player {
	sorted := slices.Clone(players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalRating() > sorted[j].TotalRating()
	})
	return sorted
}
