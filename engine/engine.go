// Package engine defines the GraphQL engine contract the HTTP handler
// delegates to, plus the default binding backed by graphql-go. The handler
// never touches a syntax tree; it only sees opaque documents and resolved
// operation descriptors.
package engine

import (
	"context"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/borderlesshq/gqlhttp/graphql"
)

// Engine parses, validates and executes GraphQL operations against one
// schema. Implementations must be safe for concurrent use.
type Engine interface {
	// ValidateSchema reports structural problems with the configured schema.
	ValidateSchema() gqlerror.List

	// Parse turns query text into an executable document. Parse failures,
	// including anything the underlying library panics on, come back as a
	// GraphQL-shaped error list.
	Parse(query string) (Document, gqlerror.List)

	// Validate checks a parsed document against the schema.
	Validate(doc Document) gqlerror.List

	// Execute resolves an operation and returns the execution result. Field
	// errors are reported in the response's error list, never panicked.
	Execute(ctx context.Context, p *ExecuteParams) *graphql.Response
}

// AsyncEngine is implemented by engines that can run execution off the
// calling goroutine. The channel receives exactly one response and is
// buffered, so an abandoned result does not leak the worker.
type AsyncEngine interface {
	Engine

	ExecuteAsync(ctx context.Context, p *ExecuteParams) <-chan *graphql.Response
}

// Document is a parsed query owned by the engine that produced it.
type Document interface {
	// Operation resolves the operation to execute. An empty name selects the
	// document's only operation; resolution fails when the name is unknown or
	// when an unnamed selection is ambiguous.
	Operation(name string) (Operation, bool)
}

// Operation describes a resolved operation within a document.
type Operation struct {
	Name string
	Type ast.Operation
}

// ExecuteParams carries everything one execution needs beyond the schema.
type ExecuteParams struct {
	Document      Document
	OperationName string
	Variables     map[string]interface{}
	RootValue     interface{}
	ContextValue  interface{}
}

// ExecuteFunc is the execute call shape middleware wraps around.
type ExecuteFunc func(ctx context.Context, p *ExecuteParams) *graphql.Response
