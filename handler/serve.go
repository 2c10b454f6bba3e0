package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/borderlesshq/gqlhttp/engine"
	"github.com/borderlesshq/gqlhttp/graphql"
)

// ServeHTTP runs one GraphQL request. Query-string variables and operation
// name are read up front for every method; the body can only layer on top of
// them.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	variables := map[string]interface{}{}
	if raw := r.URL.Query().Get("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &variables); err != nil {
			h.writeError(w, r, http.StatusBadRequest, nil, graphql.ErrorResponsef("Variables are invalid JSON."))
			return
		}
	}
	operationName := r.URL.Query().Get("operationName")

	var params graphql.RawParams
	switch r.Method {
	case http.MethodOptions:
		h.processPreflight(w, r)
		return

	case http.MethodPost:
		body, err := parseBody(r)
		if err != nil {
			h.writeError(w, r, http.StatusBadRequest, nil, graphql.ErrorResponse(err))
			return
		}
		params = body
		if params.OperationName != "" {
			operationName = params.OperationName
		}

	case http.MethodGet:
		if h.renderTool(w, r) {
			return
		}
		params.Query = r.URL.Query().Get("query")

	default:
		h.writeError(w, r, http.StatusMethodNotAllowed, map[string]string{"Allow": "GET, POST"},
			graphql.ErrorResponsef("GraphQL only supports GET and POST requests."))
		return
	}

	if err := mergeVariables(variables, params.Variables); err != nil {
		h.writeError(w, r, http.StatusBadRequest, nil, graphql.ErrorResponsef("Variables are invalid JSON."))
		return
	}

	h.executeRequest(w, r, params.Query, operationName, variables)
}

// executeRequest drives the validation pipeline: query presence, schema
// validation, parse, operation resolution, document validation, execute.
// The first failure ends the request, except operation resolution, which
// flags the request invalid and still lets the engine produce its own
// diagnostic.
func (h *Handler) executeRequest(w http.ResponseWriter, r *http.Request, query, operationName string, variables map[string]interface{}) {
	invalid := false

	if query == "" {
		h.encode(w, r, graphql.ErrorResponsef("Must provide query string."), true)
		return
	}

	if errs := h.eng.ValidateSchema(); len(errs) > 0 {
		h.encode(w, r, &graphql.Response{Data: graphql.Null, Errors: errs}, true)
		return
	}

	doc, errs := h.eng.Parse(query)
	if len(errs) > 0 {
		h.encode(w, r, &graphql.Response{Data: graphql.Null, Errors: errs}, true)
		return
	}

	if op, ok := doc.Operation(operationName); !ok {
		invalid = true
	} else if r.Method == http.MethodGet && op.Type != ast.Query {
		h.writeError(w, r, http.StatusMethodNotAllowed, map[string]string{"Allow": "POST"},
			graphql.ErrorResponsef("Can only perform a %s operation from a POST request.", op.Type))
		return
	}

	if errs := h.eng.Validate(doc); len(errs) > 0 {
		h.encode(w, r, &graphql.Response{Data: graphql.Null, Errors: errs}, true)
		return
	}

	res := h.execute(r.Context(), &engine.ExecuteParams{
		Document:      doc,
		OperationName: operationName,
		Variables:     variables,
		RootValue:     h.rootValue,
		ContextValue:  h.buildContextValue(r),
	})
	h.encode(w, r, res, invalid)
}

// execute applies the middleware chain around the engine, awaiting an async
// engine's pending result when asynchronous mode is on. Both paths block
// until execution completes.
func (h *Handler) execute(ctx context.Context, p *engine.ExecuteParams) *graphql.Response {
	var exec engine.ExecuteFunc = h.eng.Execute
	if h.async {
		if ae, ok := h.eng.(engine.AsyncEngine); ok {
			exec = func(ctx context.Context, p *engine.ExecuteParams) *graphql.Response {
				return <-ae.ExecuteAsync(ctx, p)
			}
		}
	}

	for i := len(h.middleware) - 1; i >= 0; i-- {
		exec = h.middleware[i](exec)
	}
	return exec(ctx, p)
}

// buildContextValue derives the per-request context value from the configured
// template. The template itself is never mutated.
func (h *Handler) buildContextValue(r *http.Request) interface{} {
	if h.contextValue == nil {
		return map[string]interface{}{"request": r}
	}

	base, ok := h.contextValue.(map[string]interface{})
	if !ok {
		return h.contextValue
	}

	cv := make(map[string]interface{}, len(base)+1)
	for k, v := range base {
		cv[k] = v
	}
	if _, taken := cv["request"]; !taken {
		cv["request"] = r
	}
	return cv
}

func (h *Handler) renderTool(w http.ResponseWriter, r *http.Request) bool {
	if !h.toolNegotiated(r) {
		return false
	}
	h.tool.ServeHTTP(w, r)
	return true
}

// toolNegotiated reports whether a GET request should see the interactive UI
// rather than a JSON response: a tool is installed, no raw flag, and the
// client accepts HTML.
func (h *Handler) toolNegotiated(r *http.Request) bool {
	if h.tool == nil || r.Method != http.MethodGet {
		return false
	}
	if _, raw := r.URL.Query()["raw"]; raw {
		return false
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}

func (h *Handler) isPretty(r *http.Request) bool {
	if h.pretty || h.toolNegotiated(r) {
		return true
	}
	_, present := r.URL.Query()["pretty"]
	return present
}
