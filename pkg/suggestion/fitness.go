package suggestion

import (
	"fmt"

	"github.com/wildfunctions/graphsuggest/pkg/chart"
	"github.com/wildfunctions/graphsuggest/pkg/preference"
)

// Weights controls the relative importance of fitness components.
type Weights struct {
	Compatibility float64 `json:"compatibility" yaml:"compatibility"`
	TargetBonus   float64 `json:"target_bonus" yaml:"target_bonus"`
}

// DefaultWeights returns the default fitness weights.
func DefaultWeights() Weights {
	return Weights{
		Compatibility: 1.0,
		TargetBonus:   10.0,
	}
}

// Validate checks that a matching target always outranks any baseline.
func (w Weights) Validate() error {
	if w.Compatibility < 0 {
		return fmt.Errorf("compatibility weight %v is negative", w.Compatibility)
	}
	spread := w.Compatibility * (chart.MaxCompatibility - chart.MinCompatibility)
	if w.TargetBonus <= spread {
		return fmt.Errorf("target bonus %v must exceed the baseline spread %v", w.TargetBonus, spread)
	}
	return nil
}

// Score rates a candidate whose field has the given declared type. It is a
// pure function of its arguments.
func Score(c Candidate, declaredType string, target *preference.Target, w Weights) float64 {
	score := w.Compatibility * chart.Compatibility(c.GraphType, chart.CategoryOf(declaredType))
	if TargetMatches(c.GraphType, declaredType, target) {
		score += w.TargetBonus
	}
	return score
}

// TargetMatches reports whether a chart type and field type hit the target.
// The field type must equal the target type; see chart.TypeMatches.
func TargetMatches(graphType, declaredType string, target *preference.Target) bool {
	if target == nil || graphType != target.GraphType {
		return false
	}
	return chart.TypeMatches(declaredType, target.PrimitiveType)
}
