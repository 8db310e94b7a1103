package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/flowdesk"
	"github.com/aretw0/flowdesk/internal/config"
	"github.com/aretw0/flowdesk/pkg/adapters/file"
	"github.com/aretw0/flowdesk/pkg/adapters/memory"
	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	def := flowdesk.NewApprovalTemplate("Approval", "manager")
	def.ID = "approval"

	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		cfg  config.StoreConfig
	}{
		{"memory", config.StoreConfig{Driver: config.DriverMemory}},
		{"file json", config.StoreConfig{Driver: config.DriverFile, Path: t.TempDir()}},
		{"file yaml", config.StoreConfig{Driver: config.DriverFile, Path: t.TempDir(), Format: "yaml"}},
		{"redis", config.StoreConfig{Driver: config.DriverRedis, Redis: config.RedisConfig{
			Addr:   mr.Addr(),
			Prefix: "test:",
			TTL:    config.Duration(time.Hour),
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeFn, err := OpenStore(tt.cfg)
			require.NoError(t, err)
			defer func() { assert.NoError(t, closeFn()) }()

			require.NoError(t, store.Save(ctx, def))
			got, err := store.Load(ctx, "approval")
			require.NoError(t, err)
			assert.Len(t, got.Nodes, 5)
		})
	}

	t.Run("file format", func(t *testing.T) {
		store, _, err := OpenStore(config.StoreConfig{Driver: config.DriverFile, Path: t.TempDir(), Format: "yaml"})
		require.NoError(t, err)
		assert.Equal(t, file.FormatYAML, store.(*file.Store).Format)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, closeFn, err := OpenStore(config.StoreConfig{Driver: "s3"})
		assert.ErrorContains(t, err, `unknown store driver "s3"`)
		assert.NotNil(t, closeFn)
	})
}

func TestResolveDefinition(t *testing.T) {
	ctx := context.Background()
	def := flowdesk.NewApprovalTemplate("Approval", "manager")

	path := filepath.Join(t.TempDir(), "approval.yaml")
	require.NoError(t, file.WriteDefinition(path, def))

	store := memory.NewStore()
	stored := def
	stored.ID = "stored"
	stored.Name = "From store"
	require.NoError(t, store.Save(ctx, stored))

	got, err := ResolveDefinition(ctx, store, path)
	require.NoError(t, err)
	assert.Equal(t, "Approval", got.Name)

	got, err = ResolveDefinition(ctx, store, "stored")
	require.NoError(t, err)
	assert.Equal(t, "From store", got.Name)

	_, err = ResolveDefinition(ctx, store, "missing")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

	_, err = ResolveDefinition(ctx, nil, "missing")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

	_, err = ResolveDefinition(ctx, store, "")
	assert.Error(t, err)
}

func TestNewSession(t *testing.T) {
	cfg := config.Default()
	cfg.History.Limit = 3
	cfg.Editor.StrictConnections = true

	var commits int
	s := NewSession(cfg, nil, domain.LifecycleHooks{
		OnCommit: func(*domain.CommitEvent) { commits++ },
	})

	for range 5 {
		_, err := s.AddNodeFromTemplate(domain.NodeTypeAction)
		require.NoError(t, err)
	}
	assert.Equal(t, 5, commits)
	assert.Equal(t, 3, s.HistoryLen())

	end, err := s.AddNodeFromTemplate(domain.NodeTypeEnd)
	require.NoError(t, err)
	assert.False(t, s.ClickOutputHandle(end.ID), "strict connections from config")
}

func TestCreateLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := CreateLogger(&buf, config.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	logger.Debug("hello", "error", "boom")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"err":"boom"`)

	_, err = CreateLogger(&buf, config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, "-", []byte("graph LR\n")))
	assert.Equal(t, "graph LR\n", buf.String())

	path := filepath.Join(t.TempDir(), "out.mmd")
	require.NoError(t, WriteOutput(&buf, path, []byte("x")))
	assert.FileExists(t, path)
}
