package strategy

import (
	"github.com/wildfunctions/graphsuggest/pkg/pool"
	"github.com/wildfunctions/graphsuggest/pkg/suggestion"
)

// rouletteFloor is the weight given to the worst candidate of a generation.
const rouletteFloor = 1.0

func init() {
	Register("roulette", func(Params) Strategy { return &RouletteStrategy{} })
}

// RouletteStrategy implements fitness-proportionate selection. Scores are
// shifted so the worst candidate has weight rouletteFloor.
type RouletteStrategy struct{}

func (s *RouletteStrategy) Name() string { return "roulette" }

func (s *RouletteStrategy) Select(population []suggestion.Candidate, rng pool.Rand) []suggestion.Candidate {
	n := len(population)
	if n == 0 {
		return nil
	}

	lowest := population[0].Score
	for _, c := range population[1:] {
		if c.Score < lowest {
			lowest = c.Score
		}
	}

	cumulative := make([]float64, n)
	total := 0.0
	for i, c := range population {
		total += c.Score - lowest + rouletteFloor
		cumulative[i] = total
	}

	parents := make([]suggestion.Candidate, n)
	for i := range parents {
		r := rng.Float64() * total
		idx := n - 1
		for j, edge := range cumulative {
			if r < edge {
				idx = j
				break
			}
		}
		parents[i] = population[idx]
	}
	return parents
}
