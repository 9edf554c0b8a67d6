package appcore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"notebook/framework"
	"notebook/internal/notes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

type countingStore struct {
	notes.Store
	getErr   error
	listErr  error
	gets     int
	listings int
}

func (s *countingStore) GetNote(ctx context.Context, id string) (*notes.Note, error) {
	s.gets++
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.Store.GetNote(ctx, id)
}

func (s *countingStore) ListNotes(ctx context.Context, query string) ([]notes.Summary, error) {
	s.listings++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.Store.ListNotes(ctx, query)
}

func newTestContext() (*Context, *countingStore) {
	store := &countingStore{Store: notes.NewMemoryStore(
		notes.Note{ID: "abc123", Title: "Groceries", Content: "**milk**, eggs", UpdatedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
		notes.Note{ID: "journal/may", Title: "", Content: "dear diary", UpdatedAt: time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)},
	)}
	return NewContext(store).WithClock(func() time.Time { return testNow }), store
}

func TestLoadNotePageFound(t *testing.T) {
	t.Parallel()

	appCtx, store := newTestContext()
	r := httptest.NewRequest(http.MethodGet, "/note/abc123", nil)

	view, err := LoadNotePage(context.Background(), appCtx, r, framework.IDParams{ID: "abc123"})
	require.NoError(t, err)

	assert.Equal(t, 1, store.gets)
	assert.Equal(t, 1, store.listings)
	assert.True(t, view.Note.Found())
	assert.Equal(t, "Groceries", view.Layout.PageTitle)
	assert.Equal(t, "/note/abc123", view.Layout.Sidebar.SearchAction)
	assert.Equal(t, "abc123", view.Layout.Sidebar.ActiveID)

	require.Len(t, view.Layout.Sidebar.Items, 2)
	first := view.Layout.Sidebar.Items[0]
	assert.Equal(t, "abc123", first.ID)
	assert.True(t, first.Active)
	assert.Equal(t, "milk, eggs", first.Excerpt)
	assert.Equal(t, "9:30 AM", first.UpdatedLabel)

	second := view.Layout.Sidebar.Items[1]
	assert.Equal(t, "Untitled", second.Title)
	assert.Equal(t, "/note/journal%2Fmay", second.URL)
	assert.Equal(t, "/note/journal%2Fmay/live", second.LiveURL)
	assert.Equal(t, "4/2/24", second.UpdatedLabel)
	assert.False(t, second.Active)
}

func TestLoadNotePageMissing(t *testing.T) {
	t.Parallel()

	appCtx, store := newTestContext()
	r := httptest.NewRequest(http.MethodGet, "/note/nope", nil)

	view, err := LoadNotePage(context.Background(), appCtx, r, framework.IDParams{ID: "nope"})
	require.NoError(t, err)

	assert.Equal(t, 1, store.gets)
	assert.False(t, view.Note.Found())
	assert.Equal(t, "nope", view.Note.NoteID)
	assert.Empty(t, view.Layout.PageTitle)
}

func TestLoadNotePageSearchQuery(t *testing.T) {
	t.Parallel()

	appCtx, _ := newTestContext()
	r := httptest.NewRequest(http.MethodGet, "/note/abc123?q=+groc+", nil)

	view, err := LoadNotePage(context.Background(), appCtx, r, framework.IDParams{ID: "abc123"})
	require.NoError(t, err)

	assert.Equal(t, "groc", view.Layout.Sidebar.Query)
	require.Len(t, view.Layout.Sidebar.Items, 1)
	assert.Equal(t, "/note/abc123?q=groc", view.Layout.Sidebar.Items[0].URL)
}

func TestLoadNotePaneSkipsSidebar(t *testing.T) {
	t.Parallel()

	appCtx, store := newTestContext()
	r := httptest.NewRequest(http.MethodGet, "/note/abc123/live", nil)

	view, err := LoadNotePane(context.Background(), appCtx, r, framework.IDParams{ID: "abc123"}, Signals{Query: "gro"})
	require.NoError(t, err)

	assert.Equal(t, 1, store.gets)
	assert.Zero(t, store.listings)
	assert.True(t, view.Note.Found())
}

func TestLoadNotePaneMissingNote(t *testing.T) {
	t.Parallel()

	appCtx, _ := newTestContext()
	r := httptest.NewRequest(http.MethodGet, "/note/nope/live", nil)

	view, err := LoadNotePane(context.Background(), appCtx, r, framework.IDParams{ID: "nope"}, Signals{})
	require.NoError(t, err)
	assert.False(t, view.Note.Found())
}

func TestLoadNotePaneLookupFailure(t *testing.T) {
	t.Parallel()

	appCtx, store := newTestContext()
	store.getErr = errors.New("store down")
	r := httptest.NewRequest(http.MethodGet, "/note/abc123/live", nil)

	_, err := LoadNotePane(context.Background(), appCtx, r, framework.IDParams{ID: "abc123"}, Signals{})
	assert.Same(t, store.getErr, err)
}

func TestLoadSidebarFiltersBySignals(t *testing.T) {
	t.Parallel()

	appCtx, store := newTestContext()
	r := httptest.NewRequest(http.MethodGet, "/sidebar/live", nil)

	view, err := LoadSidebar(context.Background(), appCtx, r, framework.EmptyParams{}, Signals{Query: "groc", Note: "abc123"})
	require.NoError(t, err)

	assert.Zero(t, store.gets)
	assert.Equal(t, 1, store.listings)
	assert.Equal(t, "groc", view.Sidebar.Query)
	assert.Equal(t, "abc123", view.Sidebar.ActiveID)
	assert.Equal(t, "/note/abc123", view.Sidebar.SearchAction)
	require.Len(t, view.Sidebar.Items, 1)
	assert.True(t, view.Sidebar.Items[0].Active)
	assert.Equal(t, "/note/abc123/live", view.Sidebar.Items[0].LiveURL)
}

func TestLoadSidebarListFailure(t *testing.T) {
	t.Parallel()

	appCtx, store := newTestContext()
	store.listErr = errors.New("list down")
	r := httptest.NewRequest(http.MethodGet, "/sidebar/live", nil)

	_, err := LoadSidebar(context.Background(), appCtx, r, framework.EmptyParams{}, Signals{})
	require.ErrorIs(t, err, store.listErr)
}

func TestParseLiveSignals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  string
		want    Signals
		wantErr bool
	}{
		{name: "datastar payload", target: "/sidebar/live?datastar=" + url.QueryEscape(`{"q":" groc ","note":"abc123"}`), want: Signals{Query: "groc", Note: "abc123"}},
		{name: "plain query fallback", target: "/sidebar/live?q=+milk+", want: Signals{Query: "milk"}},
		{name: "no signals", target: "/sidebar/live", want: Signals{}},
		{name: "malformed payload", target: "/sidebar/live?datastar=" + url.QueryEscape(`{"q":`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLiveSignals(httptest.NewRequest(http.MethodGet, tt.target, nil))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadNotePageLookupFailure(t *testing.T) {
	t.Parallel()

	appCtx, store := newTestContext()
	boom := errors.New("store down")
	store.getErr = boom
	r := httptest.NewRequest(http.MethodGet, "/note/abc123", nil)

	_, err := LoadNotePage(context.Background(), appCtx, r, framework.IDParams{ID: "abc123"})
	require.Error(t, err)
	assert.Same(t, boom, err)
	assert.Zero(t, store.listings, "sidebar must not be listed after a failed lookup")
}

func TestLoadNotePageSidebarFailure(t *testing.T) {
	t.Parallel()

	appCtx, store := newTestContext()
	store.listErr = errors.New("list down")
	r := httptest.NewRequest(http.MethodGet, "/note/abc123", nil)

	_, err := LoadNotePage(context.Background(), appCtx, r, framework.IDParams{ID: "abc123"})
	require.ErrorIs(t, err, store.listErr)
	assert.Contains(t, err.Error(), "list notes for sidebar")
}

func TestLoadHomePage(t *testing.T) {
	t.Parallel()

	appCtx, store := newTestContext()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	view, err := LoadHomePage(context.Background(), appCtx, r, framework.EmptyParams{})
	require.NoError(t, err)

	assert.Zero(t, store.gets)
	assert.Equal(t, "/", view.Layout.Sidebar.SearchAction)
	assert.Len(t, view.Layout.Sidebar.Items, 2)
	for _, item := range view.Layout.Sidebar.Items {
		assert.False(t, item.Active)
	}
}

func TestLoadersWithoutStore(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := LoadHomePage(context.Background(), nil, r, framework.EmptyParams{})
	require.ErrorIs(t, err, errNoteStoreUnavailable)

	_, err = LoadNotePage(context.Background(), NewContext(nil), r, framework.IDParams{ID: "x"})
	require.ErrorIs(t, err, errNoteStoreUnavailable)

	_, err = LoadNotePane(context.Background(), NewContext(nil), r, framework.IDParams{ID: "x"}, Signals{})
	require.ErrorIs(t, err, errNoteStoreUnavailable)

	_, err = LoadSidebar(context.Background(), nil, r, framework.EmptyParams{}, Signals{})
	require.ErrorIs(t, err, errNoteStoreUnavailable)
}

func TestURLs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/note/a%20b", NoteURL("a b", ""))
	assert.Equal(t, "/note/x?q=tea+%26+cake", NoteURL("x", " tea & cake "))
	assert.Equal(t, "/", HomeURL("  "))
	assert.Equal(t, "/?q=milk", HomeURL("milk"))
	assert.Equal(t, "/note/journal%2Fmay/live", NoteLiveURL("journal/may"))
}
