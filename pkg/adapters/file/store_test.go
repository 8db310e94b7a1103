package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/flowdesk/pkg/adapters/file"
	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/aretw0/flowdesk/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements DefinitionStore
var _ ports.DefinitionStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		ports.RunDefinitionStoreContract(t, file.New(t.TempDir()))
	})
	t.Run("yaml", func(t *testing.T) {
		ports.RunDefinitionStoreContract(t, file.New(t.TempDir(), file.WithFormat(file.FormatYAML)))
	})
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	store := file.New(dir, file.WithFormat(file.FormatYAML))

	require.NoError(t, store.Save(ctx, domain.WorkflowDefinition{ID: "wf-1", Name: "One"}))
	_, err := os.Stat(filepath.Join(dir, "wf-1.yaml"))
	require.NoError(t, err, "definition stored as <id>.yaml")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	// Files of the other format are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0644))
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"wf-1"}, ids)
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "not", "yet"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileStore_RejectsPathIDs(t *testing.T) {
	store := file.New(t.TempDir())
	err := store.Save(context.Background(), domain.WorkflowDefinition{ID: "../escape"})
	assert.Error(t, err)
	_, err = store.Load(context.Background(), "a/b")
	assert.Error(t, err)
}

func TestReadWriteDefinition(t *testing.T) {
	dir := t.TempDir()
	def := domain.WorkflowDefinition{
		ID:   "wf",
		Name: "Round trip",
		Nodes: []domain.Node{
			{ID: "s", Type: domain.NodeTypeStart, Name: "Start", Config: domain.Config{}},
		},
	}

	for _, name := range []string{"def.json", "def.yaml", "def.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, file.WriteDefinition(path, def))

			got, err := file.ReadDefinition(path)
			require.NoError(t, err)
			assert.Equal(t, def.Name, got.Name)
			require.Len(t, got.Nodes, 1)
			assert.Equal(t, domain.NodeTypeStart, got.Nodes[0].Type)
		})
	}

	_, err := file.ReadDefinition(filepath.Join(dir, "missing.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestDecode_TuplePositions(t *testing.T) {
	data := []byte(`{"id":"wf","nodes":[{"id":"a","nodeType":"start","name":"A","position":[10,20],"config":{}}],"edges":[]}`)
	def, err := file.Decode(data, file.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, domain.Position{X: 10, Y: 20}, def.Nodes[0].Position)

	_, err = file.Decode([]byte(`{`), file.FormatJSON)
	assert.ErrorContains(t, err, "failed to decode json definition")
}
