package engine

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/wildfunctions/graphsuggest/pkg/pool"
	"github.com/wildfunctions/graphsuggest/pkg/preference"
	"github.com/wildfunctions/graphsuggest/pkg/schema"
	"github.com/wildfunctions/graphsuggest/pkg/strategy"
	"github.com/wildfunctions/graphsuggest/pkg/suggestion"
)

// Rand is the random source a run draws from.
type Rand = pool.Rand

// NewRand returns a seeded source and the seed it used. A zero seed picks a
// random one.
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = rand.Int63()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// Search describes the candidate space of one run.
type Search struct {
	Entity     string
	Fields     []schema.Field
	GraphTypes []string
	Target     *preference.Target
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for run progress.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver registers a callback invoked with every state a run enters.
func WithObserver(fn func(State)) Option {
	return func(e *Engine) { e.observer = fn }
}

// Engine runs the evolutionary search. An Engine holds no per-run state and
// may serve concurrent runs, each with its own Rand.
type Engine struct {
	cfg      Config
	strategy strategy.Strategy
	logger   *slog.Logger
	observer func(State)
}

// New creates a new engine from the given config.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := strategy.Get(cfg.Strategy, strategy.Params{TournamentSize: cfg.TournamentSize})
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		strategy: s,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// run tracks the state machine of a single search.
type run struct {
	e     *Engine
	state State
}

func (r *run) enter(to State) {
	if !CanTransition(r.state, to) {
		r.e.logger.Error("illegal search transition", "from", r.state, "to", to)
	}
	r.state = to
	if r.e.observer != nil {
		r.e.observer(to)
	}
}

// Run executes the evolutionary loop and returns its report. The report's
// Best is nil when the field pool or the graph-type pool is empty.
func (e *Engine) Run(s Search, rng Rand) Report {
	started := time.Now()
	report := Report{
		RunID:     uuid.NewString(),
		Entity:    s.Entity,
		Strategy:  e.strategy.Name(),
		StartedAt: started.UTC(),
	}

	r := &run{e: e, state: Initialized}
	if e.observer != nil {
		e.observer(Initialized)
	}

	p, err := pool.New(s.Fields, s.GraphTypes)
	if err != nil {
		r.enter(Terminated)
		report.StopReason = StopEmptyPool
		e.logger.Debug("search not started", "entity", s.Entity, "error", err)
		return report
	}

	population := strategy.Initialize(p, rng, e.cfg.Population)

	var best *suggestion.Candidate
	gensSinceImprovement := 0

	for gen := 0; ; gen++ {
		r.enter(Evaluating)
		bestIdx := e.evaluate(population, p, s.Target)

		if best == nil || population[bestIdx].Score > best.Score {
			c := population[bestIdx]
			best = &c
			report.BestFoundAtGen = gen
			gensSinceImprovement = 0
			e.logger.Debug("new best", "entity", s.Entity, "gen", gen, "best", c.String())
		} else {
			gensSinceImprovement++
		}
		report.GenerationsUsed = gen + 1

		if e.cfg.Verbose {
			report.Generations = append(report.Generations, summarize(gen, population, bestIdx))
		}

		if e.cfg.StagnationLimit > 0 && gensSinceImprovement >= e.cfg.StagnationLimit {
			report.StopReason = StopConverged
			break
		}
		if gen+1 >= e.cfg.Generations {
			report.StopReason = StopMaxGenerations
			break
		}

		r.enter(Selecting)
		parents := e.strategy.Select(population, rng)

		r.enter(Recombining)
		children := strategy.Recombine(parents, p, rng, e.cfg.MutationRate)
		// Elitism: the generation's best survives unchanged.
		children[0] = population[bestIdx].Genes()
		population = children
	}

	r.enter(Terminated)
	report.Best = best
	report.Duration = time.Since(started)

	e.logger.Debug("search stopped",
		"entity", s.Entity,
		"reason", report.StopReason,
		"generations", report.GenerationsUsed,
		"best_at", report.BestFoundAtGen,
		"best", best.String())

	return report
}

// evaluate scores every candidate in place and returns the index of the
// first highest-scoring one.
func (e *Engine) evaluate(pop []suggestion.Candidate, p *pool.GenePool, target *preference.Target) int {
	bestIdx := 0
	for i := range pop {
		pop[i].Score = suggestion.Score(pop[i], p.TypeOf(pop[i].Field), target, e.cfg.Weights)
		if pop[i].Score > pop[bestIdx].Score {
			bestIdx = i
		}
	}
	return bestIdx
}

func summarize(gen int, pop []suggestion.Candidate, bestIdx int) GenerationReport {
	scores := make([]float64, len(pop))
	distinct := make(map[suggestion.Candidate]struct{}, len(pop))
	for i, c := range pop {
		scores[i] = c.Score
		distinct[c.Genes()] = struct{}{}
	}
	mean, std := stat.MeanStdDev(scores, nil)
	return GenerationReport{
		Generation:  gen,
		Best:        pop[bestIdx],
		MeanScore:   mean,
		StdDevScore: std,
		Distinct:    len(distinct),
	}
}
