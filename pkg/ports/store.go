package ports

import (
	"context"

	"github.com/aretw0/flowdesk/pkg/domain"
)

// DefinitionStore defines the interface for persisting workflow definitions.
// Implementations must be safe for concurrent use.
type DefinitionStore interface {
	// Save persists the definition under its ID, replacing any previous copy.
	Save(ctx context.Context, def domain.WorkflowDefinition) error

	// Load retrieves the definition with the given ID.
	// Returns domain.ErrDefinitionNotFound if it does not exist.
	Load(ctx context.Context, id string) (domain.WorkflowDefinition, error)

	// Delete removes the definition. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored definitions, sorted.
	List(ctx context.Context) ([]string, error)
}
