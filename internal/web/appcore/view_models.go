package appcore

import (
	"net/url"
	"strings"
	"time"

	"notebook/internal/markdown"
	"notebook/internal/notes"
	"notebook/internal/web/components"
	"notebook/internal/web/notepage"
)

const sidebarExcerptChars = 80

// LayoutView carries what the root layout needs.
type LayoutView struct {
	PageTitle string
	Sidebar   components.Sidebar
}

type HomePageView struct {
	Layout LayoutView
}

type NotePageView struct {
	Layout LayoutView
	Note   notepage.View
}

// NotePaneView is patched into the note pane by the live note route.
type NotePaneView struct {
	Note notepage.View
}

// SidebarView is patched into the sidebar note list.
type SidebarView struct {
	Sidebar components.Sidebar
}

func (v HomePageView) LayoutData() LayoutView {
	return v.Layout
}

func (v NotePageView) LayoutData() LayoutView {
	return v.Layout
}

// NoteURL links to a note page, keeping the sidebar query when set.
func NoteURL(id string, query string) string {
	return withQuery("/note/"+url.PathEscape(id), query)
}

// NoteLiveURL is the live counterpart of NoteURL. Search state travels in
// datastar signals, so it carries no query.
func NoteLiveURL(id string) string {
	return "/note/" + url.PathEscape(id) + "/live"
}

func HomeURL(query string) string {
	return withQuery("/", query)
}

func withQuery(path string, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return path
	}

	q := make(url.Values)
	q.Set("q", query)
	return path + "?" + q.Encode()
}

func newSidebar(items []notes.Summary, query string, activeID string, searchAction string, now time.Time) components.Sidebar {
	sidebar := components.Sidebar{
		Query:        query,
		ActiveID:     activeID,
		SearchAction: searchAction,
		Items:        make([]components.SidebarItem, 0, len(items)),
	}

	for _, item := range items {
		sidebar.Items = append(sidebar.Items, components.SidebarItem{
			ID:           item.ID,
			Title:        components.DisplayTitle(item.Title),
			Excerpt:      markdown.Excerpt(item.Content, sidebarExcerptChars),
			URL:          NoteURL(item.ID, query),
			LiveURL:      NoteLiveURL(item.ID),
			UpdatedLabel: components.SidebarTimestamp(item.UpdatedAt, now),
			Active:       item.ID == activeID,
		})
	}

	return sidebar
}
