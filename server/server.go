// Package server wraps a GraphQL http.Handler in a ready to run HTTP
// server: a chi router with the usual middleware, the IDE tool pages,
// a playground on the root path and lifecycle management.
package server

import (
	"context"
	"fmt"
	goLog "log"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/borderlesshq/gqlhttp/tools"
)

type Options struct {
	serverName        string // default: gqlhttp
	graphEntrypoint   string // graph entrypoint, stored without the leading slash
	disablePlayground bool   // skip the playground on "/"
	disableTools      bool   // skip the IDE tool pages
	tools             []*tools.Tool
	middlewares       []func(http.Handler) http.Handler
	preRunHook        preRunHook
	postRunHook       postRunHook
	log               *logrus.Logger
}

type preRunHook func() error
type postRunHook func(s *Server) error

func NewServerOptions(serverName string, graphEntryPoint string) *Options {
	if strings.TrimSpace(serverName) == empty {
		goLog.Fatal("Server name is required!")
	}

	if strings.TrimSpace(graphEntryPoint) == empty {
		goLog.Fatal("API/GraphQL entrypoint is required!")
	}

	// Detect 1st in api/graph entrypoint and strip it
	if graphEntryPoint[:1] == "/" {
		graphEntryPoint = graphEntryPoint[1:]
	}

	return &Options{
		serverName:        serverName,
		graphEntrypoint:   graphEntryPoint,
		disablePlayground: false,
		disableTools:      false,
		tools:             nil,
		middlewares:       nil,
		preRunHook:        nil,
		postRunHook:       nil,
		log:               logrus.StandardLogger(),
	}
}

func (o *Options) SetGraphEntrypointOption(entrypoint string) {
	if entrypoint[:1] == "/" {
		entrypoint = entrypoint[1:]
	}
	o.graphEntrypoint = entrypoint
}

// SetTools replaces the default IDE pages with a caller-supplied set.
func (o *Options) SetTools(t ...*tools.Tool) {
	o.tools = append(o.tools, t...)
}

func (o *Options) SetMiddlewares(middlewares ...func(http.Handler) http.Handler) {
	o.middlewares = append(o.middlewares, middlewares...)
}

func (o *Options) DisablePlayground() {
	o.disablePlayground = true
}

func (o *Options) DisableTools() {
	o.disableTools = true
}

// SetPreRunHook is
func (o *Options) SetPreRunHook(f preRunHook) {
	o.preRunHook = f
}

// SetPostRunHook is
func (o *Options) SetPostRunHook(f postRunHook) {
	o.postRunHook = f
}

func (o *Options) SetLogger(log *logrus.Logger) {
	o.log = log
}

type Server struct {
	mu               *sync.Mutex
	opts             *Options     // graph & http options
	graphHTTPHandler http.Handler // graphql handler
	graphListener    net.Listener // graphql listener
	graphEntrypoint  string       // graphql entrypoint
	address          string
	httpServer       *http.Server
	log              *logrus.Logger
}

func NewServer(address string, handler http.Handler, option Options) *Server {
	if option.log == nil {
		option.log = logrus.StandardLogger()
	}

	return &Server{
		mu:               &sync.Mutex{},
		address:          address,
		opts:             &option,
		graphHTTPHandler: handler,
		graphEntrypoint:  option.graphEntrypoint,
		log:              option.log,
	}
}

// Serve assembles the router, binds the listener and blocks until the
// server is shut down.
func (s *Server) Serve() error {
	if s.opts.preRunHook != nil {
		if err := s.opts.preRunHook(); err != nil {
			return errors.Wrap(err, "failed to execute preRunHook")
		}
	}

	router, err := s.buildRouter()
	if err != nil {
		return err
	}

	ls, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.graphListener = ls
	s.httpServer = &http.Server{Handler: router}
	s.mu.Unlock()

	printBanner(s.log, s.opts.serverName, ls.Addr().String(), s.GraphEndpoint())

	if s.opts.postRunHook != nil {
		if err := s.opts.postRunHook(s); err != nil {
			return errors.Wrap(err, "failed to execute post run hook")
		}
	}

	if err := s.httpServer.Serve(ls); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	s.log.Infof("%s: shutting down graph http server...", s.opts.serverName)
	return srv.Shutdown(ctx)
}

// Addr reports the address of the bound listener. Empty until Serve has
// bound it.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graphListener == nil {
		return empty
	}
	return s.graphListener.Addr().String()
}

// GraphEndpoint returns the path the GraphQL handler is mounted on.
func (s *Server) GraphEndpoint() string {
	return fmt.Sprintf("/%s", s.opts.graphEntrypoint)
}

// Handler returns the assembled router without binding a listener, so
// the server can be embedded in an existing http.Server or a test.
func (s *Server) Handler() (http.Handler, error) {
	return s.buildRouter()
}

func (s *Server) buildRouter() (chi.Router, error) {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	if s.opts.middlewares != nil && len(s.opts.middlewares) != 0 {
		router.Use(s.opts.middlewares...)
	}

	graphEndpoint := s.GraphEndpoint()

	if !s.opts.disablePlayground {
		router.Handle("/", playground.Handler("GraphQL playground", graphEndpoint))
	}

	if !s.opts.disableTools {
		pages := s.opts.tools
		if len(pages) == 0 {
			pages = []*tools.Tool{
				tools.GraphiQL(tools.WithEndpoint(graphEndpoint)),
				tools.Playground(tools.WithEndpoint(graphEndpoint)),
				tools.Voyager(tools.WithEndpoint(graphEndpoint)),
			}
		}

		reg, err := tools.NewRegistry(pages...)
		if err != nil {
			return nil, err
		}
		reg.Mount(router)
	}

	router.Handle(graphEndpoint, s.graphHTTPHandler)

	return router, nil
}

const empty = ""

func trim(s string) string {
	return strings.TrimSpace(s)
}
