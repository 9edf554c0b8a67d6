package appcore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"notebook/framework"
	"notebook/internal/notes"
	"notebook/internal/web/components"
	"notebook/internal/web/notepage"
	"github.com/starfederation/datastar-go/datastar"
)

// Signals mirrors the $q and $note datastar signals seeded by the sidebar.
type Signals struct {
	Query string `json:"q"`
	Note  string `json:"note"`
}

// ParseLiveSignals reads the datastar signals of a live request. A plain GET
// without a datastar payload falls back to the q query parameter.
func ParseLiveSignals(r *http.Request) (Signals, error) {
	if r.Method == http.MethodGet && !r.URL.Query().Has(datastar.DatastarKey) {
		return Signals{Query: SearchQuery(r.URL.Query())}, nil
	}

	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		return Signals{}, fmt.Errorf("read datastar signals: %w", err)
	}
	signals.Query = strings.TrimSpace(signals.Query)
	return signals, nil
}

func LoadHomePage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	_ framework.EmptyParams,
) (HomePageView, error) {
	if _, err := noteStore(appCtx); err != nil {
		return HomePageView{}, err
	}

	layout, err := loadLayout(ctx, appCtx, SearchQuery(r.URL.Query()), "", "")
	if err != nil {
		return HomePageView{}, err
	}

	return HomePageView{Layout: layout}, nil
}

// LoadNotePage resolves the note before anything else so that a failing
// lookup is reported as it is. The sidebar is listed afterwards.
func LoadNotePage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	params framework.IDParams,
) (NotePageView, error) {
	store, err := noteStore(appCtx)
	if err != nil {
		return NotePageView{}, err
	}

	note, err := notepage.Load(ctx, store, notepage.Params{ID: params.ID})
	if err != nil {
		return NotePageView{}, err
	}

	title := ""
	if note.Found() {
		title = components.NoteTitle(note.Note)
	}

	layout, err := loadLayout(ctx, appCtx, SearchQuery(r.URL.Query()), params.ID, title)
	if err != nil {
		return NotePageView{}, err
	}

	return NotePageView{Layout: layout, Note: note}, nil
}

// LoadNotePane backs the live note route. It looks the note up once and
// never lists the sidebar.
func LoadNotePane(
	ctx context.Context,
	appCtx *Context,
	_ *http.Request,
	params framework.IDParams,
	_ Signals,
) (NotePaneView, error) {
	store, err := noteStore(appCtx)
	if err != nil {
		return NotePaneView{}, err
	}

	note, err := notepage.Load(ctx, store, notepage.Params{ID: params.ID})
	if err != nil {
		return NotePaneView{}, err
	}

	return NotePaneView{Note: note}, nil
}

func LoadSidebar(
	ctx context.Context,
	appCtx *Context,
	_ *http.Request,
	_ framework.EmptyParams,
	state Signals,
) (SidebarView, error) {
	store, err := noteStore(appCtx)
	if err != nil {
		return SidebarView{}, err
	}

	sidebar, err := listSidebar(ctx, appCtx, store, state.Query, state.Note)
	if err != nil {
		return SidebarView{}, err
	}

	return SidebarView{Sidebar: sidebar}, nil
}

func loadLayout(
	ctx context.Context,
	appCtx *Context,
	query string,
	activeID string,
	title string,
) (LayoutView, error) {
	sidebar, err := listSidebar(ctx, appCtx, appCtx.store, query, activeID)
	if err != nil {
		return LayoutView{}, err
	}

	return LayoutView{PageTitle: title, Sidebar: sidebar}, nil
}

func listSidebar(
	ctx context.Context,
	appCtx *Context,
	store notes.Store,
	query string,
	activeID string,
) (components.Sidebar, error) {
	items, err := store.ListNotes(ctx, query)
	if err != nil {
		return components.Sidebar{}, fmt.Errorf("list notes for sidebar: %w", err)
	}

	searchAction := HomeURL("")
	if activeID != "" {
		searchAction = NoteURL(activeID, "")
	}
	return newSidebar(items, query, activeID, searchAction, appCtx.now()), nil
}

func SearchQuery(values url.Values) string {
	return strings.TrimSpace(values.Get("q"))
}
