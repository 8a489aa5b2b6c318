package suggester

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wildfunctions/graphsuggest/pkg/engine"
)

// Metrics contains the suggestion metrics. A nil *Metrics records nothing.
type Metrics struct {
	Suggestions *prometheus.CounterVec
	Generations prometheus.Histogram
	BestScore   prometheus.Gauge
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		Suggestions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "graphsuggest",
				Subsystem: "suggestions",
				Name:      "total",
				Help:      "Suggestion requests by outcome",
			},
			[]string{"outcome"},
		),

		Generations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "graphsuggest",
				Subsystem: "search",
				Name:      "generations",
				Help:      "Generations used by completed searches",
				Buckets:   prometheus.LinearBuckets(5, 5, 12),
			},
		),

		BestScore: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "graphsuggest",
				Subsystem: "search",
				Name:      "best_score",
				Help:      "Score of the most recent suggestion",
			},
		),
	}
}

// Register registers every metric with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Suggestions, m.Generations, m.BestScore} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) observe(outcome Outcome, report engine.Report) {
	if m == nil {
		return
	}
	m.Suggestions.WithLabelValues(string(outcome)).Inc()
	if report.Best != nil {
		m.Generations.Observe(float64(report.GenerationsUsed))
		m.BestScore.Set(report.Best.Score)
	}
}
