package web

import (
	"notebook/framework"
	"notebook/framework/router"
	"notebook/internal/web/appcore"
	"notebook/internal/web/components"
	"github.com/a-h/templ"
)

const (
	homeRoutePattern     = "/"
	noteRoutePattern     = "/note/[id]"
	noteLiveRoutePattern = "/note/[id]/live"
)

const sidebarBadSignalsMessage = "invalid sidebar signals"

type layoutProvider interface {
	LayoutData() appcore.LayoutView
}

func Routes() []framework.RouteHandler[*appcore.Context] {
	return []framework.RouteHandler[*appcore.Context]{
		framework.PageOnlyRouteHandler[*appcore.Context, framework.EmptyParams, appcore.HomePageView]{
			Page: framework.PageModule[*appcore.Context, framework.EmptyParams, appcore.HomePageView]{
				Pattern:     homeRoutePattern,
				ParseParams: emptyParams(homeRoutePattern),
				Load:        appcore.LoadHomePage,
				Render:      renderHomePage,
				Layouts: []framework.LayoutRenderer[appcore.HomePageView]{
					rootLayout[appcore.HomePageView],
				},
			},
		},
		framework.PageAndLiveRouteHandler[*appcore.Context, framework.IDParams, appcore.NotePageView, appcore.NotePaneView, appcore.Signals]{
			Page: framework.PageModule[*appcore.Context, framework.IDParams, appcore.NotePageView]{
				Pattern:     noteRoutePattern,
				ParseParams: idParams(noteRoutePattern),
				Load:        appcore.LoadNotePage,
				Render:      renderNotePage,
				Layouts: []framework.LayoutRenderer[appcore.NotePageView]{
					rootLayout[appcore.NotePageView],
				},
			},
			Live: framework.LiveModule[*appcore.Context, framework.IDParams, appcore.NotePaneView, appcore.Signals]{
				Pattern:     noteLiveRoutePattern,
				ParseParams: idParams(noteLiveRoutePattern),
				ParseState:  appcore.ParseLiveSignals,
				Load:        appcore.LoadNotePane,
				Render:      renderNotePane,
				SelectorID:  components.NotePaneID,
			},
		},
		framework.LiveOnlyRouteHandler[*appcore.Context, framework.EmptyParams, appcore.SidebarView, appcore.Signals]{
			Live: framework.LiveModule[*appcore.Context, framework.EmptyParams, appcore.SidebarView, appcore.Signals]{
				Pattern:           components.SidebarLivePath,
				ParseParams:       emptyParams(components.SidebarLivePath),
				ParseState:        appcore.ParseLiveSignals,
				Load:              appcore.LoadSidebar,
				Render:            renderSidebarNotes,
				SelectorID:        components.SidebarNotesID,
				BadRequestMessage: sidebarBadSignalsMessage,
			},
		},
	}
}

func renderHomePage(appcore.HomePageView) templ.Component {
	return components.EmptyState()
}

func renderNotePage(view appcore.NotePageView) templ.Component {
	return view.Note.Component(components.NoteView)
}

func renderNotePane(view appcore.NotePaneView) templ.Component {
	return components.NotePane(view.Note.Component(components.NoteView))
}

func renderSidebarNotes(view appcore.SidebarView) templ.Component {
	return components.SidebarNotes(view.Sidebar)
}

func rootLayout[VM layoutProvider](view VM, child templ.Component) templ.Component {
	layout := view.LayoutData()
	return components.RootLayout(layout.PageTitle, layout.Sidebar, child)
}

func emptyParams(pattern string) framework.ParamsParser[framework.EmptyParams] {
	compiled := router.MustCompile(pattern)
	return func(path string) (framework.EmptyParams, bool) {
		_, ok := compiled.Match(path)
		return framework.EmptyParams{}, ok
	}
}

func idParams(pattern string) framework.ParamsParser[framework.IDParams] {
	compiled := router.MustCompile(pattern)
	return func(path string) (framework.IDParams, bool) {
		params, ok := compiled.Match(path)
		if !ok {
			return framework.IDParams{}, false
		}
		id, ok := params["id"]
		return framework.IDParams{ID: id}, ok
	}
}
