package notes

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	t.Parallel()

	now := func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600)) }
	data := []byte(`
notes:
  - id: abc123
    title: " Groceries "
    content: milk, eggs
    updated_at: 2024-05-01T12:00:00+02:00
  - title: Untitled draft
`)

	got, err := ParseSeed(data, now)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "abc123", got[0].ID)
	assert.Equal(t, "Groceries", got[0].Title)
	assert.Equal(t, "milk, eggs", got[0].Content)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), got[0].UpdatedAt)

	_, err = uuid.Parse(got[1].ID)
	assert.NoError(t, err, "generated id should be a uuid")
	assert.Equal(t, now().UTC(), got[1].UpdatedAt)
}

func TestParseSeedRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := ParseSeed([]byte("notes:\n  - id: a\n  - id: a\n"), nil)
	require.ErrorIs(t, err, ErrInvalidNote)
	assert.Contains(t, err.Error(), `duplicate id "a"`)
}

func TestParseSeedRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := ParseSeed([]byte("notes: [unterminated"), nil)
	require.Error(t, err)
}

func TestReadSeedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("notes:\n  - id: x\n    title: X\n"), 0o644))

	got, err := ReadSeedFile(path, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "X", got[0].Title)

	_, err = ReadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}
