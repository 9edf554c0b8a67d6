package notes

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var baseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func sampleNotes() []Note {
	return []Note{
		{ID: "abc123", Title: "Groceries", Content: "milk, eggs", UpdatedAt: baseTime},
		{ID: "def456", Title: "Reading list", Content: "- Dune", UpdatedAt: baseTime.Add(time.Hour)},
		{ID: "ghi789", Title: "grocery budget", Content: "", UpdatedAt: baseTime.Add(-time.Hour)},
	}
}

func TestMemoryStoreGetNote(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(sampleNotes()...)
	ctx := context.Background()

	note, err := store.GetNote(ctx, "abc123")
	require.NoError(t, err)
	require.NotNil(t, note)
	if diff := cmp.Diff(sampleNotes()[0], *note); diff != "" {
		t.Fatalf("GetNote mismatch (-want +got):\n%s", diff)
	}

	missing, err := store.GetNote(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	empty, err := store.GetNote(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestMemoryStoreGetNoteReturnsCopy(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(sampleNotes()...)
	note, err := store.GetNote(context.Background(), "abc123")
	require.NoError(t, err)
	note.Title = "changed"

	again, err := store.GetNote(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", again.Title)
}

func TestMemoryStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore(sampleNotes()...)
	_, err := store.GetNote(ctx, "abc123")
	require.ErrorIs(t, err, context.Canceled)
	_, err = store.ListNotes(ctx, "")
	require.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStoreListNotes(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(sampleNotes()...)
	ctx := context.Background()

	all, err := store.ListNotes(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"def456", "abc123", "ghi789"}, summaryIDs(all))

	filtered, err := store.ListNotes(ctx, "  GROC ")
	require.NoError(t, err)
	assert.Equal(t, []string{"abc123", "ghi789"}, summaryIDs(filtered))

	none, err := store.ListNotes(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStorePutNotesRejectsMissingID(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	err := store.PutNotes(context.Background(), []Note{{ID: "ok"}, {ID: "  "}})
	require.ErrorIs(t, err, ErrInvalidNote)

	note, err := store.GetNote(context.Background(), "ok")
	require.NoError(t, err)
	assert.Nil(t, note, "a rejected batch must not be partially applied")
}

func TestMemoryStoreProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := NewMemoryStore()
		ctx := context.Background()

		ids := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z0-9]{1,12}`), 1, 20, rapid.ID[string]).Draw(t, "ids")
		written := make([]Note, 0, len(ids))
		for idx, id := range ids {
			written = append(written, Note{
				ID:        id,
				Title:     rapid.StringMatching(`[A-Za-z ]{0,20}`).Draw(t, "title"),
				Content:   rapid.String().Draw(t, "content"),
				UpdatedAt: baseTime.Add(time.Duration(idx) * time.Minute),
			})
		}
		if err := store.PutNotes(ctx, written); err != nil {
			t.Fatalf("PutNotes: %v", err)
		}

		for _, want := range written {
			got, err := store.GetNote(ctx, want.ID)
			if err != nil {
				t.Fatalf("GetNote(%q): %v", want.ID, err)
			}
			if got == nil || cmp.Diff(want, *got) != "" {
				t.Fatalf("GetNote(%q) = %+v, want %+v", want.ID, got, want)
			}
		}

		query := rapid.StringMatching(`[a-z]{0,3}`).Draw(t, "query")
		listed, err := store.ListNotes(ctx, query)
		if err != nil {
			t.Fatalf("ListNotes: %v", err)
		}
		expected := 0
		for _, note := range written {
			if matchesQuery(note.Title, query) {
				expected++
			}
		}
		if len(listed) != expected {
			t.Fatalf("ListNotes(%q) returned %d notes, want %d", query, len(listed), expected)
		}
		for idx := 1; idx < len(listed); idx++ {
			if listed[idx].UpdatedAt.After(listed[idx-1].UpdatedAt) {
				t.Fatalf("ListNotes not sorted newest first at %d", idx)
			}
		}
	})
}

func summaryIDs(items []Summary) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
