package suggester

import (
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/wildfunctions/graphsuggest/pkg/chart"
	"github.com/wildfunctions/graphsuggest/pkg/engine"
	"github.com/wildfunctions/graphsuggest/pkg/preference"
	"github.com/wildfunctions/graphsuggest/pkg/schema"
	"github.com/wildfunctions/graphsuggest/pkg/suggestion"
)

// ErrUnknownSource is returned when selecting metadata that was never set.
var ErrUnknownSource = errors.New("unknown data source")

// Option configures a Suggester.
type Option func(*Suggester)

// WithLogger sets the logger. The engine logs through it as well.
func WithLogger(l *slog.Logger) Option {
	return func(s *Suggester) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConfig sets the engine configuration.
func WithConfig(cfg engine.Config) Option {
	return func(s *Suggester) { s.cfg = cfg }
}

// WithSeed fixes the seed of every search. Zero picks a fresh random seed
// per search. It overrides the seed of WithConfig regardless of order.
func WithSeed(seed int64) Option {
	return func(s *Suggester) { s.seed = &seed }
}

// WithRandSource replaces seeding entirely: every search draws from the
// source returned by fn.
func WithRandSource(fn func() engine.Rand) Option {
	return func(s *Suggester) { s.newRand = fn }
}

// WithMetrics records every request in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Suggester) { s.metrics = m }
}

// Suggester is the entry point of the graph-suggestion engine. Configuration
// calls may race with suggestion requests; every request works on a
// snapshot taken when it starts.
type Suggester struct {
	index schema.Index
	prefs preference.Profile

	mu       sync.RWMutex
	sources  map[string]*schema.Snapshot
	entities EntityFilter

	cfg     engine.Config
	engine  *engine.Engine
	logger  *slog.Logger
	metrics *Metrics
	newRand func() engine.Rand
	seed    *int64
}

// New creates a Suggester. It fails only on an invalid engine config.
func New(opts ...Option) (*Suggester, error) {
	s := &Suggester{
		cfg:     engine.DefaultConfig(),
		logger:  slog.Default(),
		sources: make(map[string]*schema.Snapshot),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed != nil {
		s.cfg.Seed = *s.seed
	}

	eng, err := engine.New(s.cfg, engine.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.engine = eng
	return s, nil
}

// SetMetadata replaces the current metadata. Nil items or types are ignored.
// Mismatched field and type lists are rejected with schema.ErrTypeMismatch
// and the previous metadata stays current.
func (s *Suggester) SetMetadata(items, associations, types map[string][]string) error {
	if err := s.index.Set(items, associations, types); err != nil {
		s.logger.Error("rejected metadata", "error", err)
		return err
	}
	return nil
}

// Terminals returns the terminal fields of entity in the current metadata.
func (s *Suggester) Terminals(entity string) []schema.Field {
	return s.index.Terminals(entity)
}

// ExcludeFields stops fields from being suggested. Exclusions accumulate
// until Reset.
func (s *Suggester) ExcludeFields(fields ...string) {
	s.prefs.ExcludeFields(fields...)
}

// NotInExclusions reports whether field may be suggested.
func (s *Suggester) NotInExclusions(field string) bool {
	return s.prefs.NotInExclusions(field)
}

// AcceptedFields returns the excluded fields in sorted order.
func (s *Suggester) AcceptedFields() []string {
	return s.prefs.Excluded()
}

// SetGraphTypes replaces the chart types suggestions may use.
func (s *Suggester) SetGraphTypes(types []string) {
	s.prefs.SetGraphTypes(types)
}

// ChangeFitnessTarget sets the preferred (graph type, primitive type) pair,
// or clears it when both are preference.None.
func (s *Suggester) ChangeFitnessTarget(graphType, primitiveType string) bool {
	ok := s.prefs.ChangeFitnessTarget(graphType, primitiveType)
	if !ok {
		s.logger.Warn("incomplete fitness target", "graph_type", graphType, "primitive_type", primitiveType)
	}
	return ok
}

// SetFittestEChart learns the fitness target from an ECharts option the user
// approved. A nil option clears the target.
func (s *Suggester) SetFittestEChart(option map[string]any) bool {
	if option == nil {
		s.logger.Info("resetting fitness target")
		return s.prefs.ChangeFitnessTarget(preference.None, preference.None)
	}
	graphType, primitiveType, err := chart.TargetFromEChart(option)
	if err != nil {
		s.logger.Info("cannot learn fitness target", "error", err)
		return false
	}
	return s.prefs.ChangeFitnessTarget(graphType, primitiveType)
}

// LimitEntities restricts suggestions to the given entities. An empty list
// accepts every entity.
func (s *Suggester) LimitEntities(entities []string) {
	s.mu.Lock()
	s.entities = NewEntityFilter(entities)
	s.mu.Unlock()
}

// AcceptedEntities returns the entity allow-list.
func (s *Suggester) AcceptedEntities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entities.Accepted()
}

// Reset clears preferences and the entity allow-list. Metadata is kept.
func (s *Suggester) Reset() {
	s.prefs.Reset()
	s.LimitEntities(nil)
}

// Context snapshots the current configuration.
func (s *Suggester) Context() Context {
	s.mu.RLock()
	entities := s.entities
	s.mu.RUnlock()
	return Context{
		Schema:    s.index.Snapshot(),
		Prefs:     s.prefs.Snapshot(),
		Entities:  entities,
		Catalogue: s.cfg.Catalogue,
	}
}

// GetSuggestions returns the best (field, graph type, score) found for
// entity, or nil when no suggestion is available. An empty entity is
// treated as absent.
func (s *Suggester) GetSuggestions(entity string) *suggestion.Triple {
	report, _ := s.Search(entity)
	return report.Triple()
}

// Search is GetSuggestions with the full run report and outcome.
func (s *Suggester) Search(entity string) (engine.Report, Outcome) {
	return s.search(s.Context(), entity)
}

// GeneticAlgorithm runs the search directly over fields of entity. Nil or
// empty fields yield nil without searching.
func (s *Suggester) GeneticAlgorithm(fields []string, entity string) *suggestion.Triple {
	rng, seed := s.rand()
	report, outcome := s.Context().Evolve(s.engine, fields, entity, rng)
	report.Seed = seed
	s.observe(entity, report, outcome)
	return report.Triple()
}

func (s *Suggester) search(ctx Context, entity string) (engine.Report, Outcome) {
	rng, seed := s.rand()
	report, outcome := ctx.Search(s.engine, entity, rng)
	report.Seed = seed
	s.observe(entity, report, outcome)
	return report, outcome
}

func (s *Suggester) rand() (engine.Rand, int64) {
	if s.newRand != nil {
		return s.newRand(), 0
	}
	return engine.NewRand(s.cfg.Seed)
}

func (s *Suggester) observe(entity string, report engine.Report, outcome Outcome) {
	s.metrics.observe(outcome, report)
	switch outcome {
	case OutcomeSuggested:
		s.logger.Debug("suggestion",
			"entity", entity,
			"field", report.Best.Field,
			"graph_type", report.Best.GraphType,
			"score", report.Best.Score,
			"seed", report.Seed)
	case OutcomeNoEntity:
		s.logger.Info("no entity received for suggestion generation")
	default:
		s.logger.Info("no suggestion", "entity", entity, "reason", outcome)
	}
}

// SetSourceMetadata stores the metadata of one data source. The first
// source stored also becomes the current metadata.
func (s *Suggester) SetSourceMetadata(source string, items, associations, types map[string][]string) error {
	if items == nil || types == nil {
		return nil
	}
	snap, err := schema.Build(items, associations, types)
	if err != nil {
		s.logger.Error("rejected metadata", "source", source, "error", err)
		return err
	}

	s.mu.Lock()
	s.sources[source] = snap
	s.mu.Unlock()

	if s.index.Snapshot() == nil {
		s.index.Replace(snap)
	}
	return nil
}

// UseSource makes a stored source's metadata current.
func (s *Suggester) UseSource(source string) error {
	snap, ok := s.sourceSnapshot(source)
	if !ok {
		return ErrUnknownSource
	}
	s.index.Replace(snap)
	return nil
}

// GetSourceSuggestions suggests for an entity of a stored source without
// changing the current metadata.
func (s *Suggester) GetSourceSuggestions(source, entity string) *suggestion.Triple {
	// An unknown source leaves Schema nil and the search reports no metadata.
	snap, _ := s.sourceSnapshot(source)
	ctx := s.Context()
	ctx.Schema = snap
	report, _ := s.search(ctx, entity)
	return report.Triple()
}

// Sources returns the stored source names in sorted order.
func (s *Suggester) Sources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClearMetadata forgets every stored source and the current metadata.
func (s *Suggester) ClearMetadata() {
	s.mu.Lock()
	s.sources = make(map[string]*schema.Snapshot)
	s.mu.Unlock()
	s.index.Clear()
}

// IsInitialised reports whether any metadata is available.
func (s *Suggester) IsInitialised() bool {
	s.mu.RLock()
	n := len(s.sources)
	s.mu.RUnlock()
	return n > 0 || s.index.Snapshot() != nil
}

func (s *Suggester) sourceSnapshot(source string) (*schema.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.sources[source]
	return snap, ok
}
