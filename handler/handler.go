// Package handler maps HTTP requests onto a GraphQL engine: method and
// content-type dispatch, variable merging across query string and body, CORS
// preflight, and GraphQL-over-HTTP response shaping.
package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/borderlesshq/gqlhttp/engine"
)

// Middleware wraps the engine's execute call. The first middleware passed to
// Use runs outermost.
type Middleware func(next engine.ExecuteFunc) engine.ExecuteFunc

// Handler serves a GraphQL endpoint over HTTP. All configuration is fixed at
// construction; a Handler is safe for concurrent use.
type Handler struct {
	eng          engine.Engine
	async        bool
	rootValue    interface{}
	contextValue interface{}
	middleware   []Middleware
	maxAge       int
	pretty       bool
	tool         http.Handler
	log          *logrus.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// Async controls whether a pending execution from an AsyncEngine is awaited
// on its own goroutine. Off means the engine must behave synchronously.
func Async(on bool) Option {
	return func(h *Handler) { h.async = on }
}

// RootValue sets the root value handed to every execution.
func RootValue(v interface{}) Option {
	return func(h *Handler) { h.rootValue = v }
}

// ContextValue sets the static context template. A map is shallow-copied per
// request and the *http.Request injected under "request" unless the key is
// already taken; any other value reaches resolvers untouched.
func ContextValue(v interface{}) Option {
	return func(h *Handler) { h.contextValue = v }
}

// Use appends execution middleware.
func Use(mw ...Middleware) Option {
	return func(h *Handler) { h.middleware = append(h.middleware, mw...) }
}

// MaxAge sets the Access-Control-Max-Age advertised on CORS preflight.
func MaxAge(seconds int) Option {
	return func(h *Handler) { h.maxAge = seconds }
}

// Pretty indents every response body with two spaces. Clients can request
// the same per call with a pretty query-string flag.
func Pretty(on bool) Option {
	return func(h *Handler) { h.pretty = on }
}

// Tool installs an interactive UI page. HTML-accepting GET requests without
// a raw query-string flag render it instead of executing.
func Tool(ui http.Handler) Option {
	return func(h *Handler) { h.tool = ui }
}

// Logger replaces the logger used for encode and write failures.
func Logger(log *logrus.Logger) Option {
	return func(h *Handler) { h.log = log }
}

// New builds a Handler around the given engine.
func New(eng engine.Engine, opts ...Option) *Handler {
	if eng == nil {
		panic("gqlhttp: handler requires an engine")
	}

	h := &Handler{
		eng:    eng,
		async:  true,
		maxAge: 86400,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
