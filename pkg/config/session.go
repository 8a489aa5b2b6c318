// Package config loads session files: the metadata of a data source, the
// user's preferences and the engine parameters, in YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wildfunctions/graphsuggest/pkg/engine"
	"github.com/wildfunctions/graphsuggest/pkg/preference"
	"github.com/wildfunctions/graphsuggest/pkg/schema"
	"github.com/wildfunctions/graphsuggest/pkg/suggester"
)

// ErrInvalidConfig is wrapped by semantic validation failures.
var ErrInvalidConfig = errors.New("invalid session config")

// Session is the content of a session file.
type Session struct {
	Source       string              `yaml:"source"`
	Items        map[string][]string `yaml:"items"`
	Types        map[string][]string `yaml:"types"`
	Associations map[string][]string `yaml:"associations"`
	Exclude      []string            `yaml:"exclude"`
	GraphTypes   []string            `yaml:"graph_types"`
	Target       *preference.Target  `yaml:"target"`
	Entities     []string            `yaml:"entities"`
	Engine       engine.Config       `yaml:"engine"`
}

// Load reads and parses a session file.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a session. Engine parameters missing from the document keep
// their defaults.
func Parse(data []byte) (*Session, error) {
	s := &Session{Engine: engine.DefaultConfig()}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the session before it is applied.
func (s *Session) Validate() error {
	if len(s.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidConfig)
	}
	if _, err := schema.Build(s.Items, s.Associations, s.Types); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if s.Target != nil && (s.Target.GraphType == preference.None) != (s.Target.PrimitiveType == preference.None) {
		return fmt.Errorf("%w: target needs both graph_type and primitive_type", ErrInvalidConfig)
	}
	if err := s.Engine.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Apply configures sg with the session's metadata and preferences. The
// engine parameters are not applied; pass Engine to suggester.WithConfig.
func (s *Session) Apply(sg *suggester.Suggester) error {
	if s.Source != "" {
		if err := sg.SetSourceMetadata(s.Source, s.Items, s.Associations, s.Types); err != nil {
			return err
		}
		if err := sg.UseSource(s.Source); err != nil {
			return err
		}
	} else if err := sg.SetMetadata(s.Items, s.Associations, s.Types); err != nil {
		return err
	}

	sg.ExcludeFields(s.Exclude...)
	if len(s.GraphTypes) > 0 {
		sg.SetGraphTypes(s.GraphTypes)
	}
	if s.Target != nil && !sg.ChangeFitnessTarget(s.Target.GraphType, s.Target.PrimitiveType) {
		return fmt.Errorf("%w: target %+v", ErrInvalidConfig, *s.Target)
	}
	sg.LimitEntities(s.Entities)
	return nil
}
