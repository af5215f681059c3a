package balance

import (
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/okian/squadmaker/internal/domain/model"
)

// Random assigns players to squads at random, ignoring ratings. It is a
// baseline for evaluating other strategies, not meant for production use.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ Strategy = (*Random)(nil)

// NewRandom creates the baseline strategy. A nil rng is replaced by a
// time-seeded source.
func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // not security sensitive
	}
	return &Random{rng: rng}
}

// Name implements Strategy.
func (*Random) Name() string { return RandomName }

// Balance implements Strategy.
func (r *Random) Balance(numSquads int, players []*model.Player) (Result, error) {
	if err := Validate(numSquads, players); err != nil {
		return Result{}, err
	}
	shuffled := slices.Clone(players)
	r.mu.Lock()
	r.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	r.mu.Unlock()
	return partition(shuffled, numSquads, PlayersPerSquad(numSquads, len(players))), nil
}
