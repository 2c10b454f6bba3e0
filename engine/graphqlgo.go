package engine

import (
	"context"
	"encoding/json"
	"fmt"

	gql "github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	gqlast "github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/borderlesshq/gqlhttp/graphql"
)

// GraphQLGo binds a runtime-constructed graphql-go schema behind the Engine
// contract. It is the default engine.
type GraphQLGo struct {
	schema gql.Schema
}

var _ AsyncEngine = (*GraphQLGo)(nil)

// New wraps a graphql-go schema. The schema is immutable afterwards.
func New(schema gql.Schema) *GraphQLGo {
	return &GraphQLGo{schema: schema}
}

func (e *GraphQLGo) ValidateSchema() gqlerror.List {
	if e.schema.QueryType() == nil {
		return gqlerror.List{{Message: "Query root type must be provided."}}
	}
	return nil
}

func (e *GraphQLGo) Parse(query string) (doc Document, errs gqlerror.List) {
	// This stage owns the only catch-all: whatever the parser throws is
	// reported as a GraphQL-shaped error, not a transport fault.
	defer func() {
		if r := recover(); r != nil {
			doc, errs = nil, gqlerror.List{{Message: fmt.Sprint(r)}}
		}
	}()

	src := source.NewSource(&source.Source{
		Body: []byte(query),
		Name: "GraphQL request",
	})
	astDoc, err := parser.Parse(parser.ParseParams{Source: src})
	if err != nil {
		return nil, formattedErrors(gqlerrors.FormatErrors(err))
	}
	return &document{doc: astDoc}, nil
}

func (e *GraphQLGo) Validate(doc Document) gqlerror.List {
	d, ok := doc.(*document)
	if !ok {
		return gqlerror.List{{Message: "cannot validate a document parsed by another engine"}}
	}

	vr := gql.ValidateDocument(&e.schema, d.doc, gql.SpecifiedRules)
	if vr.IsValid {
		return nil
	}
	return formattedErrors(vr.Errors)
}

func (e *GraphQLGo) Execute(ctx context.Context, p *ExecuteParams) *graphql.Response {
	d, ok := p.Document.(*document)
	if !ok {
		return graphql.ErrorResponsef("cannot execute a document parsed by another engine")
	}

	result := gql.Execute(gql.ExecuteParams{
		Schema:        e.schema,
		Root:          p.RootValue,
		AST:           d.doc,
		OperationName: p.OperationName,
		Args:          p.Variables,
		Context:       WithContextValue(ctx, p.ContextValue),
	})

	res := &graphql.Response{Errors: formattedErrors(result.Errors)}
	if len(result.Extensions) > 0 {
		res.Extensions = result.Extensions
	}
	if result.Data == nil {
		res.Data = graphql.Null
		return res
	}

	data, err := json.Marshal(result.Data)
	if err != nil {
		return graphql.ErrorResponsef("unable to serialize execution result: %s", err)
	}
	res.Data = data
	return res
}

// ExecuteAsync runs Execute on its own goroutine. The returned channel is
// buffered, delivers exactly one response, and never closes early.
func (e *GraphQLGo) ExecuteAsync(ctx context.Context, p *ExecuteParams) <-chan *graphql.Response {
	ch := make(chan *graphql.Response, 1)
	go func() {
		ch <- e.Execute(ctx, p)
	}()
	return ch
}

// document wraps graphql-go's AST so no syntax tree crosses the package
// boundary.
type document struct {
	doc *gqlast.Document
}

// Operation mirrors graphql-js getOperationAST: a named lookup returns the
// first match, an empty name returns the sole operation and fails when the
// document holds more than one.
func (d *document) Operation(name string) (Operation, bool) {
	var found *gqlast.OperationDefinition
	for _, def := range d.doc.Definitions {
		op, ok := def.(*gqlast.OperationDefinition)
		if !ok {
			continue
		}

		if name == "" {
			if found != nil {
				return Operation{}, false
			}
			found = op
			continue
		}

		if op.Name != nil && op.Name.Value == name {
			found = op
			break
		}
	}

	if found == nil {
		return Operation{}, false
	}

	resolved := Operation{Type: ast.Operation(found.Operation)}
	if found.Name != nil {
		resolved.Name = found.Name.Value
	}
	return resolved, true
}

func formattedErrors(errs []gqlerrors.FormattedError) gqlerror.List {
	if len(errs) == 0 {
		return nil
	}

	out := make(gqlerror.List, 0, len(errs))
	for _, e := range errs {
		out = append(out, formattedError(e))
	}
	return out
}

// formattedError rebuilds a graphql-go error in gqlparser's error type, which
// carries the response serialization rules (locations and path keys dropped
// when empty).
func formattedError(e gqlerrors.FormattedError) *gqlerror.Error {
	err := &gqlerror.Error{
		Message:    e.Message,
		Extensions: e.Extensions,
	}
	for _, loc := range e.Locations {
		err.Locations = append(err.Locations, gqlerror.Location{
			Line:   loc.Line,
			Column: loc.Column,
		})
	}
	for _, p := range e.Path {
		switch v := p.(type) {
		case string:
			err.Path = append(err.Path, ast.PathName(v))
		case int:
			err.Path = append(err.Path, ast.PathIndex(v))
		case float64:
			err.Path = append(err.Path, ast.PathIndex(int(v)))
		default:
			err.Path = append(err.Path, ast.PathName(fmt.Sprint(v)))
		}
	}
	return err
}
