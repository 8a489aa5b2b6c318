// Package preference holds the user's suggestion preferences: excluded
// fields, the allowed chart types and an optional fitness target.
package preference

import (
	"sort"
	"sync"
)

// None is the sentinel that clears one side of a fitness target.
const None = ""

// Target biases the search toward a chart type used with a kind of field.
type Target struct {
	GraphType     string `json:"graph_type" yaml:"graph_type"`
	PrimitiveType string `json:"primitive_type" yaml:"primitive_type"`
}

// Profile is the mutable preference state. The zero value is ready to use.
type Profile struct {
	mu         sync.RWMutex
	excluded   map[string]struct{}
	graphTypes []string
	target     *Target
}

// ExcludeFields adds fields to the exclusion set. Exclusions accumulate until
// Reset.
func (p *Profile) ExcludeFields(fields ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.excluded == nil {
		p.excluded = make(map[string]struct{}, len(fields))
	}
	for _, f := range fields {
		p.excluded[f] = struct{}{}
	}
}

// NotInExclusions reports whether field may be suggested.
func (p *Profile) NotInExclusions(field string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.excluded[field]
	return !ok
}

// Excluded returns the excluded fields in sorted order.
func (p *Profile) Excluded() []string {
	return p.Snapshot().Excluded()
}

// SetGraphTypes replaces the allowed chart types. The list is not checked
// against any catalogue.
func (p *Profile) SetGraphTypes(types []string) {
	p.mu.Lock()
	p.graphTypes = append([]string(nil), types...)
	p.mu.Unlock()
}

// ChangeFitnessTarget sets the fitness target, or clears it when both
// arguments are None. A half-specified target is rejected and leaves the
// profile unchanged.
func (p *Profile) ChangeFitnessTarget(graphType, primitiveType string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case graphType == None && primitiveType == None:
		p.target = nil
	case graphType == None || primitiveType == None:
		return false
	default:
		p.target = &Target{GraphType: graphType, PrimitiveType: primitiveType}
	}
	return true
}

// Reset restores the zero profile.
func (p *Profile) Reset() {
	p.mu.Lock()
	p.excluded = nil
	p.graphTypes = nil
	p.target = nil
	p.mu.Unlock()
}

// Snapshot returns an immutable copy of the current preferences.
func (p *Profile) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := Snapshot{
		excluded:   make(map[string]struct{}, len(p.excluded)),
		graphTypes: append([]string(nil), p.graphTypes...),
	}
	for f := range p.excluded {
		s.excluded[f] = struct{}{}
	}
	if p.target != nil {
		t := *p.target
		s.target = &t
	}
	return s
}

// Snapshot is a read-only copy of a Profile.
type Snapshot struct {
	excluded   map[string]struct{}
	graphTypes []string
	target     *Target
}

// NotInExclusions reports whether field may be suggested.
func (s Snapshot) NotInExclusions(field string) bool {
	_, ok := s.excluded[field]
	return !ok
}

// Excluded returns the excluded fields in sorted order.
func (s Snapshot) Excluded() []string {
	out := make([]string, 0, len(s.excluded))
	for f := range s.excluded {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// GraphTypes returns the allowed chart types; empty means the default pool.
func (s Snapshot) GraphTypes() []string {
	return append([]string(nil), s.graphTypes...)
}

// Target returns the fitness target, or nil if none is set.
func (s Snapshot) Target() *Target {
	if s.target == nil {
		return nil
	}
	t := *s.target
	return &t
}
