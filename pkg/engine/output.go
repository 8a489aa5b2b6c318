package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/wildfunctions/graphsuggest/pkg/suggestion"
)

// GenerationReport summarizes one generation.
type GenerationReport struct {
	Generation  int                  `json:"generation"`
	Best        suggestion.Candidate `json:"best"`
	MeanScore   float64              `json:"mean_score"`
	StdDevScore float64              `json:"stddev_score"`
	Distinct    int                  `json:"distinct"`
}

// Report summarizes a whole run.
type Report struct {
	RunID           string                `json:"run_id"`
	Entity          string                `json:"entity"`
	Strategy        string                `json:"strategy"`
	Seed            int64                 `json:"seed,omitempty"`
	StartedAt       time.Time             `json:"started_at"`
	Duration        time.Duration         `json:"duration_ns"`
	GenerationsUsed int                   `json:"generations_used"`
	BestFoundAtGen  int                   `json:"best_found_at_gen"`
	StopReason      StopReason            `json:"stop_reason"`
	Best            *suggestion.Candidate `json:"best,omitempty"`
	Generations     []GenerationReport    `json:"generations,omitempty"`
}

// Triple returns the best candidate in result form, or nil.
func (r Report) Triple() *suggestion.Triple {
	if r.Best == nil {
		return nil
	}
	return r.Best.Triple()
}

// WriteGenerationReport writes a generation report in human-readable format.
func WriteGenerationReport(w io.Writer, g GenerationReport) {
	fmt.Fprintf(w, "Gen %4d | Best: %s | Mean: %.3f | StdDev: %.3f | Distinct: %d\n",
		g.Generation, g.Best.String(), g.MeanScore, g.StdDevScore, g.Distinct)
}

// WriteTextReport writes the final report in human-readable format.
func WriteTextReport(w io.Writer, r Report) {
	for _, g := range r.Generations {
		WriteGenerationReport(w, g)
	}
	fmt.Fprintln(w, "\n========== SUGGESTION ==========")
	fmt.Fprintf(w, "Run:         %s\n", r.RunID)
	fmt.Fprintf(w, "Entity:      %s\n", r.Entity)
	fmt.Fprintf(w, "Strategy:    %s\n", r.Strategy)
	if r.Seed != 0 {
		fmt.Fprintf(w, "Seed:        %d\n", r.Seed)
	}
	fmt.Fprintf(w, "Generations: %d (best at %d, stop: %s)\n", r.GenerationsUsed, r.BestFoundAtGen, r.StopReason)
	if r.Best != nil {
		fmt.Fprintf(w, "Field:       %s\n", r.Best.Field)
		fmt.Fprintf(w, "Graph:       %s\n", r.Best.GraphType)
		fmt.Fprintf(w, "Score:       %.4f\n", r.Best.Score)
	} else {
		fmt.Fprintln(w, "No suggestion available")
	}
	fmt.Fprintln(w, "================================")
}

// WriteJSONReport writes the final report as JSON.
func WriteJSONReport(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
