package pool

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wildfunctions/graphsuggest/pkg/schema"
)

// Errors returned when a gene pool cannot be built.
var (
	ErrNoFields     = errors.New("no candidate fields")
	ErrNoGraphTypes = errors.New("no candidate graph types")
)

// Rand is the random source a search draws from. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// GenePool provides random genes for building candidates: a field drawn
// uniformly from the candidate fields and a graph type drawn uniformly from
// the allowed chart types.
type GenePool struct {
	fields     []schema.Field
	graphTypes []string
	types      map[string]string
}

// New builds a gene pool. Duplicate field names and graph types are dropped,
// keeping the first occurrence, so every distinct gene is equally likely.
func New(fields []schema.Field, graphTypes []string) (*GenePool, error) {
	p := &GenePool{types: make(map[string]string, len(fields))}
	for _, f := range fields {
		if _, dup := p.types[f.Name]; dup {
			continue
		}
		p.types[f.Name] = f.Type
		p.fields = append(p.fields, f)
	}
	seen := make(map[string]bool, len(graphTypes))
	for _, g := range graphTypes {
		if seen[g] {
			continue
		}
		seen[g] = true
		p.graphTypes = append(p.graphTypes, g)
	}

	if len(p.fields) == 0 {
		return nil, ErrNoFields
	}
	if len(p.graphTypes) == 0 {
		return nil, ErrNoGraphTypes
	}
	return p, nil
}

// RandomField draws a field uniformly.
func (p *GenePool) RandomField(rng Rand) string {
	return p.fields[rng.Intn(len(p.fields))].Name
}

// RandomGraphType draws a graph type uniformly.
func (p *GenePool) RandomGraphType(rng Rand) string {
	return p.graphTypes[rng.Intn(len(p.graphTypes))]
}

// TypeOf returns the declared primitive type of a pool field.
func (p *GenePool) TypeOf(field string) string {
	return p.types[field]
}

// Contains reports whether both genes belong to the pool.
func (p *GenePool) Contains(field, graphType string) bool {
	if _, ok := p.types[field]; !ok {
		return false
	}
	for _, g := range p.graphTypes {
		if g == graphType {
			return true
		}
	}
	return false
}

// Fields returns the distinct candidate fields in order.
func (p *GenePool) Fields() []schema.Field {
	return append([]schema.Field(nil), p.fields...)
}

// GraphTypes returns the distinct graph types in order.
func (p *GenePool) GraphTypes() []string {
	return append([]string(nil), p.graphTypes...)
}

// Size is the number of distinct (field, graph type) combinations.
func (p *GenePool) Size() int {
	return len(p.fields) * len(p.graphTypes)
}

// Catalogue is a named set of chart types used when the user has not chosen
// any.
type Catalogue interface {
	Name() string
	GraphTypes() []string
}

// DefaultCatalogue names the catalogue used when none is configured.
const DefaultCatalogue = "basic"

var registry = map[string]func() Catalogue{}

// Register adds a catalogue constructor to the registry.
func Register(name string, constructor func() Catalogue) {
	registry[name] = constructor
}

// Get returns a catalogue by name.
func Get(name string) (Catalogue, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown catalogue: %s", name)
	}
	return ctor(), nil
}

// Names returns all registered catalogue names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefaultGraphTypes returns the chart types of the default catalogue.
func DefaultGraphTypes() []string {
	c, err := Get(DefaultCatalogue)
	if err != nil {
		return nil
	}
	return c.GraphTypes()
}
