package suggestion

import (
	"encoding/json"
	"fmt"
)

// Candidate is one chromosome of the search: a field shown with a chart type.
type Candidate struct {
	Field     string  `json:"field"`
	GraphType string  `json:"graph_type"`
	Score     float64 `json:"score"`
}

// String returns a human-readable representation.
func (c Candidate) String() string {
	return fmt.Sprintf("%s(%s) = %.2f", c.GraphType, c.Field, c.Score)
}

// Genes returns the candidate without its score.
func (c Candidate) Genes() Candidate {
	return Candidate{Field: c.Field, GraphType: c.GraphType}
}

// Triple returns the result form handed to callers.
func (c Candidate) Triple() *Triple {
	return &Triple{Field: c.Field, GraphType: c.GraphType, Score: c.Score}
}

// Triple is a suggestion result: [field, graphType, score].
type Triple struct {
	Field     string
	GraphType string
	Score     float64
}

// Slice returns the positional form of the triple.
func (t *Triple) Slice() []any {
	return []any{t.Field, t.GraphType, t.Score}
}

// MarshalJSON encodes the triple as a three-element array.
func (t *Triple) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Slice())
}

// UnmarshalJSON decodes a three-element array.
func (t *Triple) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("suggestion triple: want 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &t.Field); err != nil {
		return fmt.Errorf("suggestion triple field: %w", err)
	}
	if err := json.Unmarshal(raw[1], &t.GraphType); err != nil {
		return fmt.Errorf("suggestion triple graph type: %w", err)
	}
	if err := json.Unmarshal(raw[2], &t.Score); err != nil {
		return fmt.Errorf("suggestion triple score: %w", err)
	}
	return nil
}
