package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDefinitionStoreContract runs a suite of tests to verify that a
// DefinitionStore implementation adheres to the defined interface contract.
func RunDefinitionStoreContract(t *testing.T, store DefinitionStore) {
	ctx := context.Background()
	defID := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		def := contractDefinition(defID)

		err := store.Save(ctx, def)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, defID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, def.Name, loaded.Name)
		assert.Equal(t, def.Version, loaded.Version)
		assert.Equal(t, def.Tags, loaded.Tags)
		assert.Equal(t, def.Edges, loaded.Edges)
		require.Len(t, loaded.Nodes, len(def.Nodes))
		assert.Equal(t, def.Nodes[1].Position, loaded.Nodes[1].Position)
		assert.Equal(t, "manager", loaded.Nodes[1].Config["assignee"])
		// Keys the editor does not know about must survive storage.
		assert.Equal(t, "kept", loaded.Nodes[1].Config["x-custom"])
		assert.True(t, def.UpdatedAt.Equal(loaded.UpdatedAt), "UpdatedAt preserved")
	})

	t.Run("Overwrite", func(t *testing.T) {
		def := contractDefinition(defID)
		def.Version = 2
		def.Name = "Renamed"
		require.NoError(t, store.Save(ctx, def))

		loaded, err := store.Load(ctx, defID)
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Version)
		assert.Equal(t, "Renamed", loaded.Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+defID)
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	})

	t.Run("Empty ID", func(t *testing.T) {
		err := store.Save(ctx, contractDefinition(""))
		assert.Error(t, err)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, contractDefinition(defID)))

		err := store.Delete(ctx, defID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, defID)
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound, "Load after Delete should return ErrDefinitionNotFound")

		assert.NoError(t, store.Delete(ctx, defID), "Delete is idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := defID + "-1"
		id2 := defID + "-2"
		require.NoError(t, store.Save(ctx, contractDefinition(id2)))
		require.NoError(t, store.Save(ctx, contractDefinition(id1)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
		assert.IsNonDecreasing(t, ids)
	})
}

func contractDefinition(id string) domain.WorkflowDefinition {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return domain.WorkflowDefinition{
		ID:       id,
		Name:     "Contract",
		Version:  1,
		Category: "approval",
		Tags:     []string{"contract"},
		Nodes: []domain.Node{
			{ID: "start", Type: domain.NodeTypeStart, Name: "Start", Position: domain.Position{X: 100, Y: 200}, Config: domain.Config{}},
			{
				ID:       "review",
				Type:     domain.NodeTypeHumanTask,
				Name:     "Review",
				Position: domain.Position{X: 300.5, Y: 200},
				Config:   domain.Config{"assignee": "manager", "x-custom": "kept"},
			},
			{ID: "done", Type: domain.NodeTypeEnd, Name: "Done", Position: domain.Position{X: 500, Y: 200}, Config: domain.Config{}},
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "start", Target: "review"},
			{ID: "e2", Source: "review", Target: "done", Label: "ok", Condition: "approved == true", Priority: 1},
		},
		IsActive:  true,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}
