package tools

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, "/graphql/graphiql", GraphiQL().URL())
	assert.Equal(t, "/graphql/playground", Playground().URL())
	assert.Equal(t, "/graphql/voyager", Voyager().URL())

	for _, tool := range []*Tool{GraphiQL(), Playground(), Voyager()} {
		assert.Equal(t, "/graphql", tool.Endpoint())
	}
}

func TestServePage(t *testing.T) {
	tool := GraphiQL(WithEndpoint("/api/graphql"))

	req := httptest.NewRequest(http.MethodGet, tool.URL(), nil)
	w := httptest.NewRecorder()
	tool.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<!DOCTYPE html>")
	assert.Contains(t, w.Body.String(), "/api/graphql")
	assert.Contains(t, w.Body.String(), "GraphiQL")
}

func TestEndpointRendersUnescaped(t *testing.T) {
	pages := []*Tool{
		GraphiQL(WithEndpoint("/api/graphql")),
		Playground(WithEndpoint("/api/graphql")),
		Voyager(WithEndpoint("/api/graphql")),
	}

	for _, tool := range pages {
		w := httptest.NewRecorder()
		tool.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tool.URL(), nil))

		body := w.Body.String()
		assert.Contains(t, body, `"/api/graphql"`, tool.Name())
		assert.NotContains(t, body, `\/api`, tool.Name())
	}
}

func TestWithURL(t *testing.T) {
	tool := Voyager(WithURL("/tools/voyager"))
	assert.Equal(t, "/tools/voyager", tool.URL())
}

func TestWithTemplate(t *testing.T) {
	tmpl := template.Must(template.New("custom").Parse("custom page for {{.endpoint}}"))
	tool := Playground(WithTemplate(tmpl), WithEndpoint("/api"))

	w := httptest.NewRecorder()
	tool.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tool.URL(), nil))

	assert.Equal(t, "custom page for /api", w.Body.String())
}

func TestRegistryRejectsDuplicateURLs(t *testing.T) {
	_, err := NewRegistry(GraphiQL(), Playground(WithURL("/graphql/graphiql")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
}

func TestRegistryMount(t *testing.T) {
	reg, err := NewRegistry(GraphiQL(), Playground(), Voyager())
	require.NoError(t, err)
	require.Len(t, reg.Tools(), 3)

	router := chi.NewRouter()
	reg.Mount(router)

	for _, path := range []string{"/graphql/graphiql", "/graphql/playground", "/graphql/voyager"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	}
}
