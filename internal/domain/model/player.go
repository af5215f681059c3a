package model

import "strings"

// Ratings holds one rating per skill, indexed by Skill.
type Ratings [SkillCount]Rating

// NewRatings validates the three raw skill values. See ParseRating for the
// accepted input kinds.
func NewRatings(skating, shooting, checking any) (Ratings, error) {
	var r Ratings
	for s, raw := range [SkillCount]any{skating, shooting, checking} {
		v, err := ParseRating(raw)
		if err != nil {
			return Ratings{}, err
		}
		r[s] = v
	}
	return r, nil
}

// Total returns the sum of all ratings.
func (r Ratings) Total() float64 {
	var sum float64
	for _, v := range r {
		sum += float64(v)
	}
	return sum
}

// Player is a rated hockey player. Players are immutable and compared by
// pointer identity: two players may hold identical names and ratings.
type Player struct {
	id        string
	firstName string
	lastName  string
	ratings   Ratings
}

// NewPlayer builds a player. Names are informational and may be empty.
func NewPlayer(id, firstName, lastName string, ratings Ratings) *Player {
	return &Player{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
		ratings:   ratings,
	}
}

// ID returns the source identifier, if any.
func (p *Player) ID() string { return p.id }

// FirstName returns the first name, empty when unknown.
func (p *Player) FirstName() string { return p.firstName }

// LastName returns the last name, empty when unknown.
func (p *Player) LastName() string { return p.lastName }

// FullName joins the known name parts.
func (p *Player) FullName() string {
	return strings.TrimSpace(p.firstName + " " + p.lastName)
}

// Rating returns the rating for skill s.
func (p *Player) Rating(s Skill) Rating { return p.ratings[s] }

// Ratings returns a copy of all ratings.
func (p *Player) Ratings() Ratings { return p.ratings }

// Skating returns the skating rating.
func (p *Player) Skating() Rating { return p.ratings[Skating] }

// Shooting returns the shooting rating.
func (p *Player) Shooting() Rating { return p.ratings[Shooting] }

// Checking returns the checking rating.
func (p *Player) Checking() Rating { return p.ratings[Checking] }

// TotalRating is the cumulative rating across skills. It is only used to
// order players for display.
func (p *Player) TotalRating() float64 { return p.ratings.Total() }
