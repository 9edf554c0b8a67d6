package notes

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"notebook/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestOpenDrivers(t *testing.T) {
	t.Parallel()

	seed := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seed, []byte("notes:\n  - id: abc123\n    title: Groceries\n"), 0o644))

	tests := []struct {
		name     string
		cfg      config.StoreConfig
		wantType any
	}{
		{name: "memory default", cfg: config.StoreConfig{}, wantType: &MemoryStore{}},
		{name: "memory seeded", cfg: config.StoreConfig{Driver: "memory", Seed: seed}, wantType: &MemoryStore{}},
		{name: "sqlite", cfg: config.StoreConfig{Driver: "SQLite", DSN: filepath.Join(t.TempDir(), "n.db")}, wantType: &SQLiteStore{}},
		{name: "dir", cfg: config.StoreConfig{Driver: "dir", Dir: t.TempDir()}, wantType: &DirStore{}},
		{name: "graphql", cfg: config.StoreConfig{Driver: "graphql", GraphQL: config.GraphQLConfig{Endpoint: "http://127.0.0.1:1/graphql"}}, wantType: &GraphQLStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, err := Open(context.Background(), tt.cfg, zaptest.NewLogger(t))
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close() })
			assert.IsType(t, tt.wantType, store)
		})
	}
}

func TestOpenSeededMemoryStore(t *testing.T) {
	t.Parallel()

	seed := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seed, []byte("notes:\n  - id: abc123\n    title: Groceries\n    content: milk, eggs\n"), 0o644))

	store, err := Open(context.Background(), config.StoreConfig{Driver: config.DriverMemory, Seed: seed}, nil)
	require.NoError(t, err)

	note, err := store.GetNote(context.Background(), "abc123")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "milk, eggs", note.Content)
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), config.StoreConfig{Driver: "redis"}, nil)
	require.ErrorIs(t, err, ErrUnknownDriver)
	assert.Contains(t, err.Error(), `"redis"`)
}
