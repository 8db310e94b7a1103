package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/flowdesk/pkg/domain"
)

// Store implements ports.DefinitionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.WorkflowDefinition
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.WorkflowDefinition),
	}
}

// Save persists the definition in memory.
func (s *Store) Save(ctx context.Context, def domain.WorkflowDefinition) error {
	if def.ID == "" {
		return fmt.Errorf("definition id cannot be empty")
	}
	// Deep copy to ensure isolation, similar to serialization
	copied := clone(def)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[def.ID] = copied
	return nil
}

// Load retrieves the definition from memory.
func (s *Store) Load(ctx context.Context, id string) (domain.WorkflowDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.data[id]
	if !ok {
		return domain.WorkflowDefinition{}, domain.ErrDefinitionNotFound
	}

	// Copy on read so callers can't mutate stored maps.
	return clone(def), nil
}

// Delete removes the definition.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored definition ids, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func clone(def domain.WorkflowDefinition) domain.WorkflowDefinition {
	out := def
	out.Tags = slices.Clone(def.Tags)
	out.Nodes = make([]domain.Node, len(def.Nodes))
	for i, n := range def.Nodes {
		out.Nodes[i] = n.Clone()
	}
	out.Edges = slices.Clone(def.Edges)
	if def.InputSchema != nil {
		out.InputSchema = domain.Config(def.InputSchema).Clone()
	}
	if def.OutputSchema != nil {
		out.OutputSchema = domain.Config(def.OutputSchema).Clone()
	}
	return out
}
