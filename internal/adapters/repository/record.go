package repository

import (
	"fmt"
	"time"

	"github.com/okian/squadmaker/internal/adapters/source"
	"github.com/okian/squadmaker/internal/domain/model"
)

// PlayerRecord is the players table row. Seq keeps insertion order, which is
// the order players are handed to the balancer.
type PlayerRecord struct {
	Seq       int64  `gorm:"primaryKey;autoIncrement"`
	PlayerID  string `gorm:"uniqueIndex;size:64;not null"`
	FirstName string `gorm:"size:128"`
	LastName  string `gorm:"size:128"`
	Skating   float64
	Shooting  float64
	Checking  float64
	CreatedAt time.Time `gorm:"<-:create"`
	UpdatedAt time.Time
}

// TableName implements gorm's tabler.
func (PlayerRecord) TableName() string { return "players" }

func toRecord(p *model.Player) PlayerRecord {
	return PlayerRecord{
		PlayerID:  p.ID(),
		FirstName: p.FirstName(),
		LastName:  p.LastName(),
		Skating:   p.Skating().Float64(),
		Shooting:  p.Shooting().Float64(),
		Checking:  p.Checking().Float64(),
	}
}

func (r PlayerRecord) toPlayer() (*model.Player, error) {
	ratings, err := model.NewRatings(r.Skating, r.Shooting, r.Checking)
	if err != nil {
		return nil, fmt.Errorf("%w: row '%s': %w", source.ErrMalformedSource, r.PlayerID, err)
	}
	return model.NewPlayer(r.PlayerID, r.FirstName, r.LastName, ratings), nil
}
