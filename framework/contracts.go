package framework

import (
	"context"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
)

const defaultBadRequestMessage = "invalid datastar signal payload"

type EmptyParams struct{}

// IDParams carries the single [id] segment of note routes such as
// /note/[id] and /note/[id]/live. ID is already unescaped, so
// /note/journal%2Fmay yields "journal/may".
type IDParams struct {
	ID string
}

type ParamsParser[P interface{}] func(escapedPath string) (P, bool)

type PageLoader[C interface{}, P interface{}, VM interface{}] func(
	ctx context.Context,
	appCtx C,
	r *http.Request,
	params P,
) (VM, error)

type PageRenderer[VM interface{}] func(view VM) templ.Component

type LayoutRenderer[VM interface{}] func(view VM, child templ.Component) templ.Component

// PageModule binds a route pattern to its parse, load and render steps.
// Load errors that the runtime does not classify as not-found reach the
// runtime's server error response as they are.
type PageModule[C interface{}, P interface{}, VM interface{}] struct {
	Pattern     string
	ParseParams ParamsParser[P]
	Load        PageLoader[C, P, VM]
	Render      PageRenderer[VM]
	Layouts     []LayoutRenderer[VM]
}

type LiveStateParser[S interface{}] func(r *http.Request) (S, error)

type LiveLoader[C interface{}, P interface{}, VM interface{}, S interface{}] func(
	ctx context.Context,
	appCtx C,
	r *http.Request,
	params P,
	state S,
) (VM, error)

// LiveModule answers datastar @get requests with one element patch. The
// patch replaces the element with id SelectorID, so Render must produce an
// element carrying that id.
type LiveModule[C interface{}, P interface{}, VM interface{}, S interface{}] struct {
	Pattern           string
	ParseParams       ParamsParser[P]
	ParseState        LiveStateParser[S]
	Load              LiveLoader[C, P, VM, S]
	Render            PageRenderer[VM]
	SelectorID        string
	BadRequestMessage string
}

type RuntimeContext[C interface{}] interface {
	AppContext() C
	RenderPage(r *http.Request, w http.ResponseWriter, component templ.Component) error
	PatchLive(w http.ResponseWriter, r *http.Request, selectorID string, component templ.Component) error
	IsNotFound(err error) bool
	RespondNotFound(w http.ResponseWriter, r *http.Request, notFoundContext NotFoundContext)
	RespondBadRequest(w http.ResponseWriter, message string)
	RespondServerError(w http.ResponseWriter, err error)
}

type NotFoundSource string

const (
	NotFoundSourcePageLoad       NotFoundSource = "page_load"
	NotFoundSourceLiveLoad       NotFoundSource = "live_load"
	NotFoundSourceUnmatchedRoute NotFoundSource = "unmatched_route"
)

type NotFoundContext struct {
	RequestPath         string
	MatchedRoutePattern string
	Source              NotFoundSource
}

// RouteHandler serves a full page pattern, a live pattern, or both. An empty
// pattern means the handler has no such side.
type RouteHandler[C interface{}] interface {
	PagePattern() string
	LivePattern() string
	TryServePage(runtime RuntimeContext[C], w http.ResponseWriter, r *http.Request) bool
	TryServeLive(runtime RuntimeContext[C], w http.ResponseWriter, r *http.Request) bool
}

// PageOnlyRouteHandler serves documents that have no live counterpart, such
// as the home page with its empty note pane.
type PageOnlyRouteHandler[C interface{}, P interface{}, VM interface{}] struct {
	Page PageModule[C, P, VM]
}

func (h PageOnlyRouteHandler[C, P, VM]) PagePattern() string { return h.Page.Pattern }

func (h PageOnlyRouteHandler[C, P, VM]) LivePattern() string { return "" }

func (h PageOnlyRouteHandler[C, P, VM]) TryServePage(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	return servePageModule(runtime, w, r, h.Page)
}

func (h PageOnlyRouteHandler[C, P, VM]) TryServeLive(RuntimeContext[C], http.ResponseWriter, *http.Request) bool {
	return false
}

// PageAndLiveRouteHandler pairs a document route with the live route that
// patches one region of it, like /note/[id] and /note/[id]/live swapping the
// note pane.
type PageAndLiveRouteHandler[C interface{}, P interface{}, VM interface{}, LVM interface{}, S interface{}] struct {
	Page PageModule[C, P, VM]
	Live LiveModule[C, P, LVM, S]
}

func (h PageAndLiveRouteHandler[C, P, VM, LVM, S]) PagePattern() string { return h.Page.Pattern }

func (h PageAndLiveRouteHandler[C, P, VM, LVM, S]) LivePattern() string { return h.Live.Pattern }

func (h PageAndLiveRouteHandler[C, P, VM, LVM, S]) TryServePage(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	return servePageModule(runtime, w, r, h.Page)
}

func (h PageAndLiveRouteHandler[C, P, VM, LVM, S]) TryServeLive(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	return serveLiveModule(runtime, w, r, h.Live)
}

// LiveOnlyRouteHandler serves fragments that exist only as patches, such as
// the filtered sidebar list.
type LiveOnlyRouteHandler[C interface{}, P interface{}, VM interface{}, S interface{}] struct {
	Live LiveModule[C, P, VM, S]
}

func (h LiveOnlyRouteHandler[C, P, VM, S]) PagePattern() string { return "" }

func (h LiveOnlyRouteHandler[C, P, VM, S]) LivePattern() string { return h.Live.Pattern }

func (h LiveOnlyRouteHandler[C, P, VM, S]) TryServePage(RuntimeContext[C], http.ResponseWriter, *http.Request) bool {
	return false
}

func (h LiveOnlyRouteHandler[C, P, VM, S]) TryServeLive(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	return serveLiveModule(runtime, w, r, h.Live)
}

func applyLayouts[VM interface{}](
	layouts []LayoutRenderer[VM],
	view VM,
	child templ.Component,
) templ.Component {
	wrapped := child
	for idx := len(layouts) - 1; idx >= 0; idx-- {
		wrapped = layouts[idx](view, wrapped)
	}
	return wrapped
}

func servePageModule[C interface{}, P interface{}, VM interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	module PageModule[C, P, VM],
) bool {
	params, ok := module.ParseParams(r.URL.EscapedPath())
	if !ok {
		return false
	}

	view, err := module.Load(r.Context(), runtime.AppContext(), r, params)
	if err != nil {
		handleLoadError(runtime, w, r, err, module.Pattern, NotFoundSourcePageLoad)
		return true
	}

	component := applyLayouts(module.Layouts, view, module.Render(view))
	if err := runtime.RenderPage(r, w, component); err != nil {
		runtime.RespondServerError(w, fmt.Errorf("render route %q: %w", module.Pattern, err))
	}
	return true
}

func serveLiveModule[C interface{}, P interface{}, VM interface{}, S interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	module LiveModule[C, P, VM, S],
) bool {
	params, ok := module.ParseParams(r.URL.EscapedPath())
	if !ok {
		return false
	}

	state, err := module.ParseState(r)
	if err != nil {
		message := module.BadRequestMessage
		if message == "" {
			message = defaultBadRequestMessage
		}
		runtime.RespondBadRequest(w, message)
		return true
	}

	view, err := module.Load(r.Context(), runtime.AppContext(), r, params, state)
	if err != nil {
		handleLoadError(runtime, w, r, err, module.Pattern, NotFoundSourceLiveLoad)
		return true
	}

	if err := runtime.PatchLive(w, r, module.SelectorID, module.Render(view)); err != nil {
		runtime.RespondServerError(w, fmt.Errorf("patch route %q: %w", module.Pattern, err))
	}
	return true
}

func handleLoadError[C interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	err error,
	routePattern string,
	source NotFoundSource,
) {
	if runtime.IsNotFound(err) {
		runtime.RespondNotFound(w, r, NotFoundContext{
			RequestPath:         r.URL.Path,
			MatchedRoutePattern: routePattern,
			Source:              source,
		})
		return
	}

	runtime.RespondServerError(w, fmt.Errorf("load route %q: %w", routePattern, err))
}
