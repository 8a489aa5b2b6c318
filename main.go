package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/wildfunctions/graphsuggest/pkg/config"
	"github.com/wildfunctions/graphsuggest/pkg/engine"
	"github.com/wildfunctions/graphsuggest/pkg/pool"
	"github.com/wildfunctions/graphsuggest/pkg/strategy"
	"github.com/wildfunctions/graphsuggest/pkg/suggester"
)

func main() {
	var (
		sessionPath string
		entity      string
		format      = "text"
	)
	cfg := engine.DefaultConfig()

	flag.StringVar(&sessionPath, "session", "", "session file (YAML) with metadata and preferences")
	flag.StringVar(&entity, "entity", "", "entity to suggest a chart for")
	flag.StringVar(&format, "format", format, "output format (text, json)")
	flag.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "selection strategy ("+strings.Join(strategy.Names(), ", ")+")")
	flag.StringVar(&cfg.Catalogue, "catalogue", cfg.Catalogue, "chart catalogue when the session sets no graph types ("+strings.Join(pool.Names(), ", ")+")")
	flag.IntVar(&cfg.Population, "population", cfg.Population, "population size")
	flag.IntVar(&cfg.Generations, "generations", cfg.Generations, "maximum number of generations")
	flag.IntVar(&cfg.StagnationLimit, "stagnation", cfg.StagnationLimit, "generations without improvement before stopping (0 = never)")
	flag.Float64Var(&cfg.MutationRate, "mutation", cfg.MutationRate, "per-gene mutation probability")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "report every generation and log debug output")
	flag.Parse()

	if sessionPath == "" || entity == "" {
		fmt.Fprintln(os.Stderr, "usage: graphsuggest -session FILE -entity NAME [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	session, err := config.Load(sessionPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line override the session's engine section.
	engineCfg := session.Engine
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strategy":
			engineCfg.Strategy = cfg.Strategy
		case "catalogue":
			engineCfg.Catalogue = cfg.Catalogue
		case "population":
			engineCfg.Population = cfg.Population
		case "generations":
			engineCfg.Generations = cfg.Generations
		case "stagnation":
			engineCfg.StagnationLimit = cfg.StagnationLimit
		case "mutation":
			engineCfg.MutationRate = cfg.MutationRate
		case "seed":
			engineCfg.Seed = cfg.Seed
		case "verbose":
			engineCfg.Verbose = cfg.Verbose
		}
	})

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(engineCfg)}))

	s, err := suggester.New(suggester.WithConfig(engineCfg), suggester.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := session.Apply(s); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	report, outcome := s.Search(entity)

	switch format {
	case "json":
		if err := engine.WriteJSONReport(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "error writing JSON: %v\n", err)
			os.Exit(1)
		}
	default:
		engine.WriteTextReport(os.Stdout, report)
	}

	if outcome != suggester.OutcomeSuggested {
		fmt.Fprintf(os.Stderr, "no suggestion for %s: %s\n", entity, outcome)
		os.Exit(3)
	}
}

// logLevel is Debug for verbose runs, whether -verbose or the session asked.
func logLevel(cfg engine.Config) slog.Level {
	if cfg.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
