// Package gqlhttp turns plain HTTP requests into GraphQL operations:
// it reads queries from query strings, JSON, graphql and form bodies,
// merges variables across both carriers, answers CORS preflights and
// writes spec shaped JSON responses. The subpackages carry the pieces;
// this package wires the common path together.
package gqlhttp

import (
	"net/http"

	gql "github.com/graphql-go/graphql"

	"github.com/borderlesshq/gqlhttp/client"
	"github.com/borderlesshq/gqlhttp/engine"
	"github.com/borderlesshq/gqlhttp/handler"
	"github.com/borderlesshq/gqlhttp/server"
)

type HandlerOption = handler.Option

// NewHandler serves the schema over HTTP using the bundled graphql-go
// engine. See the handler package for the available options.
func NewHandler(schema gql.Schema, options ...HandlerOption) *handler.Handler {
	return handler.New(engine.New(schema), options...)
}

type ServerOptions = server.Options

// NewServerOptions builds server options with the given service name
// and graph entrypoint.
func NewServerOptions(serverName string, graphEntryPoint string) *ServerOptions {
	return server.NewServerOptions(serverName, graphEntryPoint)
}

func NewServer(address string, handler http.Handler, option ServerOptions) *server.Server {
	return server.NewServer(address, handler, option)
}

type ClientOption = client.Option

func NewClient(endpoint string, options ...ClientOption) (*client.Client, error) {
	return client.NewClient(endpoint, options...)
}
