// Package types contains the read shapes shared by the JSON API and the HTML site.
package types

import (
	"github.com/okian/squadmaker/internal/domain/balance"
	"github.com/okian/squadmaker/internal/domain/model"
)

// Player is the presentation view of a player.
type Player struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
	Skating   float64 `json:"skating"`
	Shooting  float64 `json:"shooting"`
	Checking  float64 `json:"checking"`
	Total     float64 `json:"total"`
}

// Name returns the display name, falling back to the ID.
func (p Player) Name() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	case p.LastName != "":
		return p.LastName
	default:
		return p.ID
	}
}

// Averages holds per-skill squad averages; nil when the squad is empty.
type Averages struct {
	Skating  *float64 `json:"skating"`
	Shooting *float64 `json:"shooting"`
	Checking *float64 `json:"checking"`
}

// Squad is the presentation view of a squad.
type Squad struct {
	Players  []Player `json:"players"`
	Averages Averages `json:"averages"`
}

// PlayersResponse is the body of GET /api/players.
type PlayersResponse struct {
	Players []Player `json:"players"`
}

// SquadsResponse is the body of GET /api/squads.
type SquadsResponse struct {
	Squads      []Squad  `json:"squads"`
	WaitingList []Player `json:"waiting_list"`
}

// NewPlayer converts a domain player.
func NewPlayer(p *model.Player) Player {
	return Player{
		ID:        p.ID(),
		FirstName: p.FirstName(),
		LastName:  p.LastName(),
		Skating:   p.Skating().Float64(),
		Shooting:  p.Shooting().Float64(),
		Checking:  p.Checking().Float64(),
		Total:     p.TotalRating(),
	}
}

// NewPlayers converts players keeping their order.
func NewPlayers(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = NewPlayer(p)
	}
	return out
}

// NewSquad converts a domain squad.
func NewSquad(s *model.Squad) Squad {
	return Squad{
		Players: NewPlayers(s.Players()),
		Averages: Averages{
			Skating:  average(s, model.Skating),
			Shooting: average(s, model.Shooting),
			Checking: average(s, model.Checking),
		},
	}
}

// NewSquadsResponse converts a balancing result.
func NewSquadsResponse(res balance.Result) SquadsResponse {
	squads := make([]Squad, len(res.Squads))
	for i, s := range res.Squads {
		squads[i] = NewSquad(s)
	}
	return SquadsResponse{
		Squads:      squads,
		WaitingList: NewPlayers(res.WaitingList),
	}
}

func average(s *model.Squad, skill model.Skill) *float64 {
	v, ok := s.Average(skill)
	if !ok {
		return nil
	}
	return &v
}
