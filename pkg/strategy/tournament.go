package strategy

import (
	"github.com/wildfunctions/graphsuggest/pkg/pool"
	"github.com/wildfunctions/graphsuggest/pkg/suggestion"
)

const defaultTournamentSize = 3

func init() {
	Register("tournament", func(p Params) Strategy {
		size := p.TournamentSize
		if size < 1 {
			size = defaultTournamentSize
		}
		return &TournamentStrategy{Size: size}
	})
}

// TournamentStrategy fills the mating pool with the winners of small
// tournaments drawn with replacement.
type TournamentStrategy struct {
	Size int
}

func (s *TournamentStrategy) Name() string { return "tournament" }

func (s *TournamentStrategy) Select(population []suggestion.Candidate, rng pool.Rand) []suggestion.Candidate {
	parents := make([]suggestion.Candidate, len(population))
	for i := range parents {
		parents[i] = tournamentSelect(population, s.Size, rng)
	}
	return parents
}

// tournamentSelect returns the best of size random draws. Ties go to the
// earliest draw.
func tournamentSelect(pop []suggestion.Candidate, size int, rng pool.Rand) suggestion.Candidate {
	bestIdx := rng.Intn(len(pop))
	bestFit := pop[bestIdx].Score

	for i := 1; i < size; i++ {
		idx := rng.Intn(len(pop))
		if pop[idx].Score > bestFit {
			bestIdx = idx
			bestFit = pop[idx].Score
		}
	}

	return pop[bestIdx]
}
