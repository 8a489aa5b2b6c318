package suggester

import (
	"github.com/wildfunctions/graphsuggest/pkg/engine"
	"github.com/wildfunctions/graphsuggest/pkg/pool"
	"github.com/wildfunctions/graphsuggest/pkg/preference"
	"github.com/wildfunctions/graphsuggest/pkg/schema"
	"github.com/wildfunctions/graphsuggest/pkg/suggestion"
)

// Outcome explains the result of a suggestion request.
type Outcome string

const (
	OutcomeSuggested      Outcome = "suggested"
	OutcomeNoEntity       Outcome = "no_entity"
	OutcomeNoMetadata     Outcome = "no_metadata"
	OutcomeUnknownEntity  Outcome = "unknown_entity"
	OutcomeEntityRejected Outcome = "entity_rejected"
	OutcomeNoFields       Outcome = "no_fields"
	OutcomeEmptyPool      Outcome = "empty_pool"
)

// Context is an immutable snapshot of everything a search reads: metadata,
// preferences, the entity allow-list and the fallback chart catalogue. Searches on a Context never see
// later configuration changes, so one Context may serve many goroutines.
type Context struct {
	Schema    *schema.Snapshot
	Prefs     preference.Snapshot
	Entities  EntityFilter
	Catalogue string
}

// Candidates returns the entity's terminal fields minus exclusions, in
// declaration order.
func (c Context) Candidates(entity string) []schema.Field {
	var out []schema.Field
	for _, f := range c.Schema.Terminals(entity) {
		if c.Prefs.NotInExclusions(f.Name) {
			out = append(out, f)
		}
	}
	return out
}

// GraphTypes returns the allowed chart types, or those of the context's
// catalogue when none were set. An unknown catalogue falls back to the
// default one.
func (c Context) GraphTypes() []string {
	if types := c.Prefs.GraphTypes(); len(types) > 0 {
		return types
	}
	if cat, err := pool.Get(c.Catalogue); err == nil {
		return cat.GraphTypes()
	}
	return pool.DefaultGraphTypes()
}

// Search runs the engine for entity and reports why no suggestion was made
// when the report has no best candidate.
func (c Context) Search(eng *engine.Engine, entity string, rng engine.Rand) (engine.Report, Outcome) {
	report := engine.Report{Entity: entity}
	switch {
	case entity == "":
		return report, OutcomeNoEntity
	case c.Schema == nil:
		return report, OutcomeNoMetadata
	case !c.Schema.Has(entity):
		return report, OutcomeUnknownEntity
	case !c.Entities.Accepts(entity):
		return report, OutcomeEntityRejected
	}

	fields := c.Candidates(entity)
	if len(fields) == 0 {
		return report, OutcomeNoFields
	}
	return c.run(eng, entity, fields, rng)
}

// Evolve runs the engine over an explicit field list. Field types come from
// the entity's metadata when known. Excluded fields are dropped.
func (c Context) Evolve(eng *engine.Engine, fields []string, entity string, rng engine.Rand) (engine.Report, Outcome) {
	report := engine.Report{Entity: entity}
	if len(fields) == 0 {
		return report, OutcomeNoFields
	}

	pooled := make([]schema.Field, 0, len(fields))
	for _, name := range fields {
		if !c.Prefs.NotInExclusions(name) {
			continue
		}
		typ, _ := c.Schema.TypeOf(entity, name)
		pooled = append(pooled, schema.Field{Name: name, Type: typ})
	}
	if len(pooled) == 0 {
		return report, OutcomeNoFields
	}
	return c.run(eng, entity, pooled, rng)
}

// Suggest is Search reduced to its result.
func (c Context) Suggest(eng *engine.Engine, entity string, rng engine.Rand) *suggestion.Triple {
	report, _ := c.Search(eng, entity, rng)
	return report.Triple()
}

func (c Context) run(eng *engine.Engine, entity string, fields []schema.Field, rng engine.Rand) (engine.Report, Outcome) {
	report := eng.Run(engine.Search{
		Entity:     entity,
		Fields:     fields,
		GraphTypes: c.GraphTypes(),
		Target:     c.Prefs.Target(),
	}, rng)
	if report.Best == nil {
		return report, OutcomeEmptyPool
	}
	return report, OutcomeSuggested
}
