package schema

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrTypeMismatch is returned when an entity's field list and type list
// cannot be aligned one to one.
var ErrTypeMismatch = errors.New("field and type lists differ")

// Field is a terminal field of an entity together with its primitive type.
type Field struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Snapshot is an immutable view of a data source's metadata.
type Snapshot struct {
	terminals    map[string][]Field
	associations map[string][]string
}

// Build validates the three entity-keyed mappings and returns a snapshot.
// items[e] and types[e] must have the same length for every entity.
func Build(items, associations, types map[string][]string) (*Snapshot, error) {
	for _, entity := range sortedKeys(types) {
		if _, ok := items[entity]; !ok {
			return nil, fmt.Errorf("entity %s: %d types but no fields: %w", entity, len(types[entity]), ErrTypeMismatch)
		}
	}

	s := &Snapshot{
		terminals:    make(map[string][]Field, len(items)),
		associations: make(map[string][]string, len(associations)),
	}
	for _, entity := range sortedKeys(items) {
		names := items[entity]
		kinds, ok := types[entity]
		if !ok || len(kinds) != len(names) {
			return nil, fmt.Errorf("entity %s: %d fields, %d types: %w", entity, len(names), len(kinds), ErrTypeMismatch)
		}
		fields := make([]Field, len(names))
		for i, name := range names {
			fields[i] = Field{Name: name, Type: kinds[i]}
		}
		s.terminals[entity] = fields
	}
	for entity, assoc := range associations {
		s.associations[entity] = append([]string(nil), assoc...)
	}
	return s, nil
}

// Terminals returns a copy of the ordered terminal fields of entity, or nil
// if the entity is unknown.
func (s *Snapshot) Terminals(entity string) []Field {
	if s == nil {
		return nil
	}
	fields, ok := s.terminals[entity]
	if !ok {
		return nil
	}
	return append([]Field(nil), fields...)
}

// Associations returns the navigable related-entity fields of entity.
func (s *Snapshot) Associations(entity string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.associations[entity]...)
}

// TypeOf returns the declared primitive type of a field.
func (s *Snapshot) TypeOf(entity, field string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, f := range s.terminals[entity] {
		if f.Name == field {
			return f.Type, true
		}
	}
	return "", false
}

// Has reports whether entity is described by the snapshot.
func (s *Snapshot) Has(entity string) bool {
	if s == nil {
		return false
	}
	_, ok := s.terminals[entity]
	return ok
}

// Entities returns the entity names in sorted order.
func (s *Snapshot) Entities() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.terminals)
}

// Index holds the current metadata snapshot. It is safe for concurrent use;
// readers always see a whole snapshot.
type Index struct {
	mu      sync.RWMutex
	current *Snapshot
}

// Set replaces the whole index. A nil items or types mapping leaves the index
// untouched. On a mismatch the previous snapshot stays current.
func (ix *Index) Set(items, associations, types map[string][]string) error {
	if items == nil || types == nil {
		return nil
	}
	s, err := Build(items, associations, types)
	if err != nil {
		return err
	}
	ix.Replace(s)
	return nil
}

// Replace makes s the current snapshot.
func (ix *Index) Replace(s *Snapshot) {
	ix.mu.Lock()
	ix.current = s
	ix.mu.Unlock()
}

// Clear drops the current snapshot.
func (ix *Index) Clear() {
	ix.Replace(nil)
}

// Snapshot returns the current snapshot, or nil if metadata was never set.
func (ix *Index) Snapshot() *Snapshot {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.current
}

// Terminals returns the terminal fields of entity in the current snapshot.
func (ix *Index) Terminals(entity string) []Field {
	return ix.Snapshot().Terminals(entity)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
