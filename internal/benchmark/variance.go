package benchmark

import (
	"fmt"

	"github.com/okian/squadmaker/internal/domain/model"
)

// AverageVariance measures how evenly matched squads are: the population
// variance of the squads' average rating, taken per skill and then averaged
// over skills. Lower is better.
func AverageVariance(squads []*model.Squad) (float64, error) {
	if len(squads) == 0 {
		return 0, ErrNoSquads
	}
	var sum float64
	for _, skill := range model.Skills() {
		v, err := variance(squads, skill)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum / float64(model.SkillCount), nil
}

func variance(squads []*model.Squad, skill model.Skill) (float64, error) {
	averages := make([]float64, len(squads))
	var mean float64
	for i, s := range squads {
		avg, ok := s.Average(skill)
		if !ok {
			return 0, fmt.Errorf("%w: squad %d is empty", ErrNoSquads, i)
		}
		averages[i] = avg
		mean += avg
	}
	n := float64(len(squads))
	mean /= n

	var sum float64
	for _, avg := range averages {
		d := avg - mean
		sum += d * d
	}
	return sum / n, nil
}
