package scoring

import "github.com/okian/squadmaker/internal/domain/model"

// ScoredSquad is a squad of scored players.
//
// A squad's cumulative delta sums the signed deltas of its members per skill
// before taking absolute values, so complementary members cancel out. It is
// not the sum of the members' own cumulative deltas.
type ScoredSquad struct {
	members []ScoredPlayer
}

// NewScoredSquad creates a squad with the given initial members.
func NewScoredSquad(members ...ScoredPlayer) *ScoredSquad {
	s := &ScoredSquad{members: make([]ScoredPlayer, 0, len(members))}
	s.members = append(s.members, members...)
	return s
}

// Add appends a member.
func (s *ScoredSquad) Add(sp ScoredPlayer) {
	s.members = append(s.members, sp)
}

// Len returns the number of members.
func (s *ScoredSquad) Len() int { return len(s.members) }

// Members returns a copy of the members in order.
func (s *ScoredSquad) Members() []ScoredPlayer {
	out := make([]ScoredPlayer, len(s.members))
	copy(out, s.members)
	return out
}

// DeltaSums returns the per-skill sum of the members' signed deltas.
func (s *ScoredSquad) DeltaSums() Deltas {
	var sums Deltas
	for _, m := range s.members {
		for i, d := range m.Deltas {
			sums[i] += d
		}
	}
	return sums
}

// CumulativeDelta returns the squad's current imbalance score.
func (s *ScoredSquad) CumulativeDelta() float64 {
	return s.DeltaSums().Cumulative()
}

// CumulativeDeltaWith returns the score the squad would have if candidate
// were appended. The squad is not modified.
func (s *ScoredSquad) CumulativeDeltaWith(candidate ScoredPlayer) float64 {
	return s.DeltaSums().Plus(candidate.Deltas).Cumulative()
}

// Squad converts to a model.Squad holding the base players in order.
func (s *ScoredSquad) Squad() *model.Squad {
	return model.NewSquad(Players(s.members)...)
}
