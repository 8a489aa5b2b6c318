package strategy

import "github.com/wildfunctions/graphsuggest/pkg/suggestion"

// Crossover performs single-point crossover over the two-gene chromosome:
// each child takes its field from one parent and its graph type from the
// other. Children carry no score.
func Crossover(a, b suggestion.Candidate) (suggestion.Candidate, suggestion.Candidate) {
	c1 := suggestion.Candidate{Field: a.Field, GraphType: b.GraphType}
	c2 := suggestion.Candidate{Field: b.Field, GraphType: a.GraphType}
	return c1, c2
}
