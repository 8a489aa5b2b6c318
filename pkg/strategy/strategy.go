package strategy

import (
	"fmt"
	"sort"

	"github.com/wildfunctions/graphsuggest/pkg/pool"
	"github.com/wildfunctions/graphsuggest/pkg/suggestion"
)

// Strategy chooses the mating pool for the next generation. Selection must
// draw only from rng so that a seeded run is reproducible.
type Strategy interface {
	Name() string
	Select(population []suggestion.Candidate, rng pool.Rand) []suggestion.Candidate
}

// Params tunes the registered strategies.
type Params struct {
	TournamentSize int
}

var registry = map[string]func(Params) Strategy{}

// Register adds a strategy constructor to the registry.
func Register(name string, constructor func(Params) Strategy) {
	registry[name] = constructor
}

// Get returns a strategy by name.
func Get(name string, params Params) (Strategy, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}
	return ctor(params), nil
}

// Names returns all registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Initialize builds a population of popSize independent random candidates.
func Initialize(p *pool.GenePool, rng pool.Rand, popSize int) []suggestion.Candidate {
	pop := make([]suggestion.Candidate, popSize)
	for i := range pop {
		pop[i] = randomCandidate(p, rng)
	}
	return pop
}

// Recombine pairs consecutive parents, crosses each pair over and mutates
// the offspring. The result has the same length as parents.
func Recombine(parents []suggestion.Candidate, p *pool.GenePool, rng pool.Rand, mutationRate float64) []suggestion.Candidate {
	n := len(parents)
	next := make([]suggestion.Candidate, 0, n)
	for i := 0; len(next) < n; i += 2 {
		a := parents[i%n]
		b := parents[(i+1)%n]
		c1, c2 := Crossover(a, b)

		next = append(next, Mutate(c1, p, rng, mutationRate))
		if len(next) < n {
			next = append(next, Mutate(c2, p, rng, mutationRate))
		}
	}
	return next
}

// randomCandidate creates a candidate from two independent uniform draws.
func randomCandidate(p *pool.GenePool, rng pool.Rand) suggestion.Candidate {
	return suggestion.Candidate{
		Field:     p.RandomField(rng),
		GraphType: p.RandomGraphType(rng),
	}
}
