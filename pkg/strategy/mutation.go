package strategy

import (
	"github.com/wildfunctions/graphsuggest/pkg/pool"
	"github.com/wildfunctions/graphsuggest/pkg/suggestion"
)

// Gene identifies one position of the chromosome.
type Gene int

const (
	GeneField Gene = iota
	GeneGraphType
)

// Mutate resamples each gene independently with probability rate.
func Mutate(c suggestion.Candidate, p *pool.GenePool, rng pool.Rand, rate float64) suggestion.Candidate {
	out := c.Genes()
	if rng.Float64() < rate {
		out = mutateGene(out, GeneField, p, rng)
	}
	if rng.Float64() < rate {
		out = mutateGene(out, GeneGraphType, p, rng)
	}
	return out
}

func mutateGene(c suggestion.Candidate, g Gene, p *pool.GenePool, rng pool.Rand) suggestion.Candidate {
	switch g {
	case GeneField:
		c.Field = p.RandomField(rng)
	case GeneGraphType:
		c.GraphType = p.RandomGraphType(rng)
	}
	return c
}
