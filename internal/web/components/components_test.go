package components

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"notebook/internal/notes"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, component templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, component.Render(context.Background(), &buf))
	return buf.String()
}

func TestEmptyStateRendersExactMessage(t *testing.T) {
	t.Parallel()

	got := render(t, EmptyState())
	want := `<div class="note--empty-state"><span class="note-text--empty-state">Click a note on the left to view something! 🥺</span></div>`
	assert.Equal(t, want, got)
}

func TestNoteViewRendersNote(t *testing.T) {
	t.Parallel()

	note := &notes.Note{
		ID:        "abc123",
		Title:     "Groceries",
		Content:   "milk, eggs",
		UpdatedAt: time.Date(2024, 5, 1, 14, 5, 9, 0, time.UTC),
	}
	got := render(t, NoteView("abc123", note))

	assert.Contains(t, got, `<div class="note" data-note-id="abc123">`)
	assert.Contains(t, got, `<h1 class="note-title">Groceries</h1>`)
	assert.Contains(t, got, "Last updated on 2024-05-01 02:05:09")
	assert.Contains(t, got, `<div class="note-preview"><p>milk, eggs</p>`)
	assert.NotContains(t, got, EmptyStateMessage)
}

func TestNoteViewEscapesTitleAndSkipsRawHTML(t *testing.T) {
	t.Parallel()

	note := &notes.Note{ID: `x"y`, Title: "<b>bold</b>", Content: "<img src=x onerror=alert(1)> text"}
	got := render(t, NoteView(note.ID, note))

	assert.Contains(t, got, `data-note-id="x&#34;y"`)
	assert.Contains(t, got, "&lt;b&gt;bold&lt;/b&gt;")
	assert.NotContains(t, got, "<img")
}

func TestNoteViewDropsScriptLinks(t *testing.T) {
	t.Parallel()

	note := &notes.Note{ID: "n", Title: "Links", Content: "[click](javascript:alert(document.cookie))"}
	got := render(t, NoteView(note.ID, note))

	assert.NotContains(t, got, "javascript:")
	assert.Contains(t, got, "<tt>click</tt>")
}

func TestNoteViewUntitled(t *testing.T) {
	t.Parallel()

	got := render(t, NoteView("n", &notes.Note{ID: "n", Title: "  "}))
	assert.Contains(t, got, `<h1 class="note-title">Untitled</h1>`)
}

func TestNoteViewNilNoteRendersNothing(t *testing.T) {
	t.Parallel()

	assert.Empty(t, render(t, NoteView("n", nil)))
}

func TestSidebarViewListsItems(t *testing.T) {
	t.Parallel()

	got := render(t, SidebarView(Sidebar{
		Query: "gro",
		Items: []SidebarItem{
			{ID: "abc123", Title: "Groceries", Excerpt: "milk, eggs", URL: "/note/abc123?q=gro", UpdatedLabel: "5/1/24", Active: true},
			{ID: "def456", Title: "Grocery budget", URL: "/note/def456?q=gro"},
		},
	}))

	assert.Contains(t, got, `action="/"`)
	assert.Contains(t, got, `value="gro"`)
	assert.Contains(t, got, `href="/note/abc123?q=gro" aria-current="page"`)
	assert.Contains(t, got, `href="/note/def456?q=gro" aria-current="false"`)
	assert.Contains(t, got, "<strong>Groceries</strong> <small>5/1/24</small>")
	assert.Equal(t, 2, strings.Count(got, "<li>"))
}

func TestSidebarViewEmptyMessages(t *testing.T) {
	t.Parallel()

	assert.Contains(t, render(t, SidebarView(Sidebar{})), "No notes created yet!")
	assert.Contains(t, render(t, SidebarView(Sidebar{Query: "zzz"})), `Couldn't find any notes titled "zzz".`)
}

func TestSidebarViewRejectsUnsafeURLs(t *testing.T) {
	t.Parallel()

	got := render(t, SidebarView(Sidebar{Items: []SidebarItem{{Title: "x", URL: "javascript:alert(1)"}}}))
	assert.NotContains(t, got, "javascript:")
}

func TestRootLayoutWrapsContent(t *testing.T) {
	t.Parallel()

	got := render(t, RootLayout("Groceries", Sidebar{}, EmptyState()))

	assert.True(t, strings.HasPrefix(got, "<!doctype html>"))
	assert.Contains(t, got, "<title>Groceries | Notebook</title>")
	assert.Contains(t, got, `<section id="note-pane" class="col note-viewer"><div class="note--empty-state">`)
	assert.Contains(t, got, "@media (prefers-color-scheme: dark)")
	assert.Contains(t, got, `<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"></script>`)
	assert.NotContains(t, got, "notebook.js")
}

func TestNotePaneCarriesPatchSelector(t *testing.T) {
	t.Parallel()

	got := render(t, NotePane(EmptyState()))
	assert.True(t, strings.HasPrefix(got, `<section id="`+NotePaneID+`"`))
	assert.True(t, strings.HasSuffix(got, "</section>"))
}

func TestSidebarNotesCarriesPatchSelector(t *testing.T) {
	t.Parallel()

	got := render(t, SidebarNotes(Sidebar{Query: "zzz"}))
	assert.Equal(t, `<nav id="`+SidebarNotesID+`"><div class="notes-empty">Couldn't find any notes titled "zzz".</div></nav>`, got)
}

func TestSidebarViewSeedsSignalsAndLiveActions(t *testing.T) {
	t.Parallel()

	got := render(t, SidebarView(Sidebar{
		Query:    `say "hi"`,
		ActiveID: "abc123",
		Items: []SidebarItem{
			{ID: "abc123", Title: "Groceries", URL: "/note/abc123", LiveURL: "/note/abc123/live", Active: true},
		},
	}))

	assert.Contains(t, got, `data-signals="{&#34;q&#34;:&#34;say \&#34;hi\&#34;&#34;,&#34;note&#34;:&#34;abc123&#34;}"`)
	assert.Contains(t, got, `data-on:submit__prevent="@get(&#34;/sidebar/live&#34;)"`)
	assert.Contains(t, got, `data-bind:q data-on:input__debounce.300ms="@get(&#34;/sidebar/live&#34;)"`)
	assert.Contains(t, got, `data-on:click__prevent="$note = &#34;abc123&#34;; @get(&#34;/note/abc123/live&#34;)"`)
	assert.Contains(t, got, `data-attr:aria-current="$note == &#34;abc123&#34; ? &#39;page&#39; : &#39;false&#39;"`)
	assert.Contains(t, got, `<nav id="sidebar-notes">`)
}

func TestSidebarItemWithoutLiveURLIsPlainLink(t *testing.T) {
	t.Parallel()

	got := render(t, SidebarNotes(Sidebar{Items: []SidebarItem{{ID: "a", Title: "A", URL: "/note/a"}}}))
	assert.Contains(t, got, `href="/note/a" aria-current="false">`)
	assert.NotContains(t, got, "data-on:click")
}

func TestRootLayoutDefaultTitle(t *testing.T) {
	t.Parallel()

	assert.Contains(t, render(t, RootLayout("", Sidebar{}, templ.NopComponent)), "<title>Notebook</title>")
}

func TestNotFoundEscapesPath(t *testing.T) {
	t.Parallel()

	got := render(t, NotFound("/<script>"))
	assert.Contains(t, got, "<code>/&lt;script&gt;</code>")
	assert.Contains(t, got, "Page not found")
}

func TestSidebarTimestamp(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "9:30 AM", SidebarTimestamp(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC), now))
	assert.Equal(t, "4/30/24", SidebarTimestamp(time.Date(2024, 4, 30, 23, 59, 0, 0, time.UTC), now))
}
