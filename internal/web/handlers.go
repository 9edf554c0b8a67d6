package web

import (
	"net/http"
	"strings"

	"notebook/framework"
	"notebook/framework/httpserver"
	"notebook/internal/config"
	"notebook/internal/notes"
	"notebook/internal/web/appcore"
	"notebook/internal/web/components"
	"github.com/a-h/templ"
	"go.uber.org/zap"
)

const staticURLPrefix = "/static/"

// NewHandler serves the note pages backed by store. Failed requests answer
// with a generic 500 and are logged on logger.
func NewHandler(cfg config.Config, store notes.Store, logger *zap.Logger) (http.Handler, error) {
	return newHandler(cfg, appcore.NewContext(store), logger)
}

func newHandler(cfg config.Config, appCtx *appcore.Context, logger *zap.Logger) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	return httpserver.New(httpserver.Config[*appcore.Context]{
		AppContext: appCtx,
		Handlers:   Routes(),
		Static: httpserver.StaticMount{
			URLPrefix: staticURLPrefix,
			Dir:       cfg.StaticDir,
		},
		CachePolicies: httpserver.CachePolicies{
			HTML:   cfg.Cache.HTML,
			Static: cfg.Cache.Static,
			Error:  cfg.Cache.Error,
		},
		NotFoundPage: notFoundPage,
		LogServerError: func(err error) {
			logger.Error("request failed", zap.Error(err))
		},
		Middleware: []func(http.Handler) http.Handler{
			withRequestID,
			withRequestLogging(logger),
		},
	})
}

func notFoundPage(notFoundContext framework.NotFoundContext) templ.Component {
	path := strings.TrimSpace(notFoundContext.RequestPath)
	if path == "" {
		path = "/"
	}

	return components.RootLayout("404 Not Found", components.Sidebar{}, components.NotFound(path))
}
