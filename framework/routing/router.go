package routing

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router wraps chi.Router: the transport shell the dispatcher is mounted in.
type Router struct {
	mux chi.Router
}

// New creates a Router with sane defaults (RequestID, RealIP, Logger, Recoverer).
func New() *Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	return &Router{mux: r}
}

// Get registers a plain handler outside the dispatcher, e.g. a health check.
func (r *Router) Get(pattern string, h http.HandlerFunc) { r.mux.Get(pattern, h) }

// Middleware adds one or more middleware to the router. It must be called
// before any route is registered.
func (r *Router) Middleware(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// Mount routes every method and every path under contextPath to h.
//
//	router.Mount("/app", dispatcher)   // /app, /app/…
//	router.Mount("", dispatcher)       // everything
func (r *Router) Mount(contextPath string, h http.Handler) {
	prefix := strings.TrimRight(contextPath, "/")
	if prefix != "" {
		r.mux.Handle(prefix, h)
	}
	r.mux.Handle(prefix+"/*", h)
}

// ServeHTTP implements http.Handler so Router can be passed to http.ListenAndServe.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handler returns the underlying http.Handler (for testing etc.).
func (r *Router) Handler() http.Handler {
	return r.mux
}
