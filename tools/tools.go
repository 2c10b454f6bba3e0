// Package tools serves the browser IDE pages that ship with a GraphQL
// endpoint: GraphiQL, GraphQL Playground and Voyager. Each page is a
// static HTML shell that loads its assets from a CDN and points back at
// the configured endpoint.
package tools

import (
	"html/template"
	"net/http"
)

// Tool is one IDE page. It implements http.Handler and renders its
// template with the endpoint it was configured for.
type Tool struct {
	name     string
	url      string
	endpoint string
	tmpl     *template.Template
}

// Option adjusts a Tool before it is returned by its constructor.
type Option func(*Tool)

// WithURL changes the path the tool is mounted on.
func WithURL(url string) Option {
	return func(t *Tool) {
		t.url = url
	}
}

// WithEndpoint changes the GraphQL endpoint the rendered page talks to.
func WithEndpoint(endpoint string) Option {
	return func(t *Tool) {
		t.endpoint = endpoint
	}
}

// WithTemplate swaps the built-in page for a caller-provided template.
// The template receives "title" and "endpoint" string keys.
func WithTemplate(tmpl *template.Template) Option {
	return func(t *Tool) {
		t.tmpl = tmpl
	}
}

// GraphiQL returns the GraphiQL page, mounted on /graphql/graphiql by
// default.
func GraphiQL(opts ...Option) *Tool {
	return newTool("GraphiQL", "/graphql/graphiql", graphiqlPage, opts)
}

// Playground returns the GraphQL Playground page, mounted on
// /graphql/playground by default.
func Playground(opts ...Option) *Tool {
	return newTool("GraphQL Playground", "/graphql/playground", playgroundPage, opts)
}

// Voyager returns the GraphQL Voyager schema explorer, mounted on
// /graphql/voyager by default.
func Voyager(opts ...Option) *Tool {
	return newTool("GraphQL Voyager", "/graphql/voyager", voyagerPage, opts)
}

func newTool(name, url string, tmpl *template.Template, opts []Option) *Tool {
	t := &Tool{
		name:     name,
		url:      url,
		endpoint: "/graphql",
		tmpl:     tmpl,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the human readable tool name.
func (t *Tool) Name() string { return t.name }

// URL returns the path the tool wants to be mounted on.
func (t *Tool) URL() string { return t.url }

// Endpoint returns the GraphQL endpoint the page is wired to.
func (t *Tool) Endpoint() string { return t.endpoint }

func (t *Tool) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := map[string]string{
		"title":    t.name,
		"endpoint": t.endpoint,
	}
	if err := t.tmpl.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
