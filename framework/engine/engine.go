package engine

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"notebook/framework"
	"notebook/framework/router"
	"github.com/a-h/templ"
)

type Config[C interface{}] struct {
	AppContext C
	Handlers   []framework.RouteHandler[C]

	RenderPage func(r *http.Request, w http.ResponseWriter, component templ.Component) error
	PatchLive  func(w http.ResponseWriter, r *http.Request, selectorID string, component templ.Component) error

	IsNotFoundError   func(err error) bool
	HandleNotFound    func(w http.ResponseWriter, r *http.Request, notFoundContext framework.NotFoundContext)
	HandleBadRequest  func(w http.ResponseWriter, message string)
	HandleServerError func(w http.ResponseWriter, err error)
}

type routeEntry[C interface{}] struct {
	handler framework.RouteHandler[C]
	live    bool
}

type Engine[C interface{}] struct {
	appContext C
	router     *router.Router
	routes     map[string]routeEntry[C]

	renderPage func(r *http.Request, w http.ResponseWriter, component templ.Component) error
	patchLive  func(w http.ResponseWriter, r *http.Request, selectorID string, component templ.Component) error

	isNotFound  func(err error) bool
	notFound    func(w http.ResponseWriter, r *http.Request, notFoundContext framework.NotFoundContext)
	badRequest  func(w http.ResponseWriter, message string)
	serverError func(w http.ResponseWriter, err error)
}

func New[C interface{}](cfg Config[C]) (*Engine[C], error) {
	if cfg.RenderPage == nil {
		return nil, errors.New("render page callback is required")
	}
	if cfg.PatchLive == nil {
		return nil, errors.New("patch live callback is required")
	}

	patterns := make([]string, 0, 2*len(cfg.Handlers))
	routes := make(map[string]routeEntry[C], 2*len(cfg.Handlers))
	for _, handler := range cfg.Handlers {
		for _, side := range []struct {
			pattern string
			live    bool
		}{
			{pattern: handler.PagePattern()},
			{pattern: handler.LivePattern(), live: true},
		} {
			if strings.TrimSpace(side.pattern) == "" {
				continue
			}
			patterns = append(patterns, side.pattern)
			routes[routeKey(side.pattern)] = routeEntry[C]{handler: handler, live: side.live}
		}
	}

	routeTable, err := router.New(patterns)
	if err != nil {
		return nil, fmt.Errorf("build route table: %w", err)
	}

	isNotFound := cfg.IsNotFoundError
	if isNotFound == nil {
		isNotFound = func(error) bool { return false }
	}

	notFound := cfg.HandleNotFound
	if notFound == nil {
		notFound = func(w http.ResponseWriter, r *http.Request, _ framework.NotFoundContext) {
			http.NotFound(w, r)
		}
	}

	badRequest := cfg.HandleBadRequest
	if badRequest == nil {
		badRequest = func(w http.ResponseWriter, message string) {
			http.Error(w, message, http.StatusBadRequest)
		}
	}

	serverError := cfg.HandleServerError
	if serverError == nil {
		serverError = func(w http.ResponseWriter, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}

	return &Engine[C]{
		appContext:  cfg.AppContext,
		router:      routeTable,
		routes:      routes,
		renderPage:  cfg.RenderPage,
		patchLive:   cfg.PatchLive,
		isNotFound:  isNotFound,
		notFound:    notFound,
		badRequest:  badRequest,
		serverError: serverError,
	}, nil
}

func routeKey(pattern string) string {
	return "/" + strings.Join(router.SplitPath(pattern), "/")
}

func (engine *Engine[C]) ServeRoute(w http.ResponseWriter, r *http.Request) bool {
	match, ok := engine.router.Match(r.URL.EscapedPath())
	if !ok {
		return false
	}

	entry, ok := engine.routes[match.Pattern]
	if !ok {
		return false
	}

	if entry.live {
		return entry.handler.TryServeLive(engine, w, r)
	}
	return entry.handler.TryServePage(engine, w, r)
}

func (engine *Engine[C]) AppContext() C {
	return engine.appContext
}

func (engine *Engine[C]) RenderPage(
	r *http.Request,
	w http.ResponseWriter,
	component templ.Component,
) error {
	return engine.renderPage(r, w, component)
}

func (engine *Engine[C]) PatchLive(
	w http.ResponseWriter,
	r *http.Request,
	selectorID string,
	component templ.Component,
) error {
	return engine.patchLive(w, r, selectorID, component)
}

func (engine *Engine[C]) IsNotFound(err error) bool {
	return engine.isNotFound(err)
}

func (engine *Engine[C]) RespondNotFound(
	w http.ResponseWriter,
	r *http.Request,
	notFoundContext framework.NotFoundContext,
) {
	engine.notFound(w, r, notFoundContext)
}

func (engine *Engine[C]) RespondBadRequest(w http.ResponseWriter, message string) {
	engine.badRequest(w, message)
}

func (engine *Engine[C]) RespondServerError(w http.ResponseWriter, err error) {
	engine.serverError(w, err)
}
