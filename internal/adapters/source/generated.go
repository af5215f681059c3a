package source

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mroth/weightedrand/v2"

	"github.com/okian/squadmaker/internal/domain/model"
)

// Generator defaults.
const (
	DefaultMinRating = 20
	DefaultMaxRating = 100
)

// Rating distributions for generated players.
const (
	DistributionUniform = "uniform"
	DistributionTiered  = "tiered"
)

// tierWeights skews tiered ratings towards the middle third of the range.
var tierWeights = [...]int{1, 3, 1}

// Generated produces synthetic players. The roster is generated on the first
// call and served unchanged afterwards, so every page sees the same players.
type Generated struct {
	count        int
	min, max     int
	distribution string

	mu      sync.Mutex
	rng     *rand.Rand
	players []*model.Player
}

// GeneratedOption configures a Generated source.
type GeneratedOption func(*Generated)

// WithRatingRange sets the inclusive rating bounds.
func WithRatingRange(lo, hi int) GeneratedOption {
	return func(g *Generated) {
		g.min, g.max = lo, hi
	}
}

// WithDistribution selects DistributionUniform or DistributionTiered.
func WithDistribution(name string) GeneratedOption {
	return func(g *Generated) {
		if name != "" {
			g.distribution = name
		}
	}
}

// WithSeed makes the roster reproducible.
func WithSeed(seed int64) GeneratedOption {
	return func(g *Generated) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // not security sensitive
	}
}

// NewGenerated returns a source of count synthetic players.
func NewGenerated(count int, opts ...GeneratedOption) *Generated {
	g := &Generated{
		count:        count,
		min:          DefaultMinRating,
		max:          DefaultMaxRating,
		distribution: DistributionUniform,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // not security sensitive
	}
	return g
}

// Name implements Source.
func (g *Generated) Name() string { return KindGenerated }

// Players implements Source.
func (g *Generated) Players(ctx context.Context) ([]*model.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players == nil {
		players, err := GeneratePlayers(g.rng, g.count, g.min, g.max, g.distribution)
		if err != nil {
			return nil, err
		}
		g.players = players
	}
	out := make([]*model.Player, len(g.players))
	copy(out, g.players)
	return out, nil
}

// GeneratePlayers builds count players named firstName<i>/lastName<i> (1-based)
// with integer ratings in [lo, hi]. IDs are UUIDs drawn from rng, so a seeded
// rng yields the same roster every time.
func GeneratePlayers(rng *rand.Rand, count, lo, hi int, distribution string) ([]*model.Player, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: cannot generate %d players", ErrMalformedSource, count)
	}
	if lo < 0 || lo > hi {
		return nil, fmt.Errorf("%w: invalid rating range [%d, %d]", ErrMalformedSource, lo, hi)
	}

	draw, err := ratingDrawer(rng, lo, hi, distribution)
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, count)
	for i := 1; i <= count; i++ {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, fmt.Errorf("generate player id: %w", err)
		}
		var ratings model.Ratings
		for _, s := range model.Skills() {
			r, err := model.NewRating(float64(draw()))
			if err != nil {
				return nil, err
			}
			ratings[s] = r
		}
		players = append(players, model.NewPlayer(
			id.String(),
			fmt.Sprintf("firstName%d", i),
			fmt.Sprintf("lastName%d", i),
			ratings,
		))
	}
	return players, nil
}

func ratingDrawer(rng *rand.Rand, lo, hi int, distribution string) (func() int, error) {
	switch distribution {
	case "", DistributionUniform:
		return func() int { return lo + rng.Intn(hi-lo+1) }, nil
	case DistributionTiered:
		return tieredDrawer(rng, lo, hi)
	default:
		return nil, fmt.Errorf("%w: unknown rating distribution '%s'", ErrMalformedSource, distribution)
	}
}

type tier struct{ lo, hi int }

// tieredDrawer splits [lo, hi] into three contiguous tiers, picks a tier by
// weight and then a uniform rating inside it.
func tieredDrawer(rng *rand.Rand, lo, hi int) (func() int, error) {
	span := hi - lo + 1
	choices := make([]weightedrand.Choice[tier, int], 0, len(tierWeights))
	start := lo
	for i, w := range tierWeights {
		end := lo + span*(i+1)/len(tierWeights) - 1
		if end < start {
			// range too narrow for this tier
			continue
		}
		choices = append(choices, weightedrand.NewChoice(tier{lo: start, hi: end}, w))
		start = end + 1
	}

	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return nil, fmt.Errorf("build tier chooser: %w", err)
	}
	return func() int {
		t := chooser.PickSource(rng)
		return t.lo + rng.Intn(t.hi-t.lo+1)
	}, nil
}
