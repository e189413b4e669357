package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	appMiddleware "github.com/prasetyowira/qrlogo/api/middleware"
	"github.com/prasetyowira/qrlogo/constant"
	appLogger "github.com/prasetyowira/qrlogo/infrastructure/logger"
)

// FormHandler serves the form UI routes
type FormHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	Clear(w http.ResponseWriter, r *http.Request)
	PreviewPNG(w http.ResponseWriter, r *http.Request)
	PreviewJSON(w http.ResponseWriter, r *http.Request)
}

// Router binds the form handler to chi
type Router struct {
	handler FormHandler
	router  *chi.Mux
}

// NewRouter installs the middleware chain; routes are added by SetupRoutes.
// RequestLogger is the only source of request IDs and wraps Recoverer so
// recovered panics are logged as 500s.
func NewRouter(handler FormHandler) *Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(appMiddleware.RequestLogger())
	r.Use(middleware.Recoverer)

	return &Router{
		handler: handler,
		router:  r,
	}
}

// SetupRoutes registers the form, preview and health routes
func (r *Router) SetupRoutes() {
	appLogger.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	r.router.Get(constant.RouteIndex, r.handler.Index)
	r.router.Post(constant.RouteGenerate, r.handler.Generate)
	r.router.Post(constant.RouteSave, r.handler.Save)
	r.router.Post(constant.RouteClear, r.handler.Clear)
	r.router.Get(constant.RoutePreviewPNG, r.handler.PreviewPNG)
	r.router.Get(constant.RoutePreviewJSON, r.handler.PreviewJSON)

	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, r *http.Request) {
		appLogger.CtxDebug(r.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(constant.MsgHealthy))
	})
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
