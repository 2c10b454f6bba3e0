package server

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
	})
}

func routerFor(t *testing.T, opts *Options) http.Handler {
	t.Helper()

	srv := NewServer(":0", okHandler(), *opts)
	router, err := srv.Handler()
	require.NoError(t, err)
	return router
}

func TestGraphEndpointMounted(t *testing.T) {
	router := routerFor(t, NewServerOptions("test-api", "graphql"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/graphql", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"data":{"ok":true}}`, w.Body.String())
}

func TestEntrypointLeadingSlashIsNormalized(t *testing.T) {
	opts := NewServerOptions("test-api", "/api/graphql")
	srv := NewServer(":0", okHandler(), *opts)
	assert.Equal(t, "/api/graphql", srv.GraphEndpoint())

	router, err := srv.Handler()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/graphql", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPlaygroundOnRoot(t *testing.T) {
	router := routerFor(t, NewServerOptions("test-api", "graphql"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "GraphQL playground")
}

func TestPlaygroundDisabled(t *testing.T) {
	opts := NewServerOptions("test-api", "graphql")
	opts.DisablePlayground()
	router := routerFor(t, opts)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToolPagesMounted(t *testing.T) {
	router := routerFor(t, NewServerOptions("test-api", "graphql"))

	for _, path := range []string{"/graphql/graphiql", "/graphql/playground", "/graphql/voyager"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html", path)
		assert.Contains(t, w.Body.String(), "/graphql", path)
	}
}

func TestToolPagesDisabled(t *testing.T) {
	opts := NewServerOptions("test-api", "graphql")
	opts.DisableTools()
	router := routerFor(t, opts)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql/graphiql", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomMiddleware(t *testing.T) {
	opts := NewServerOptions("test-api", "graphql")
	opts.SetMiddlewares(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Custom", "on")
			next.ServeHTTP(w, r)
		})
	})
	router := routerFor(t, opts)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/graphql", nil))
	assert.Equal(t, "on", w.Header().Get("X-Custom"))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "gqlhttp", cfg.ServerName)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "graphql", cfg.GraphEntrypoint)
	assert.Equal(t, 86400, cfg.MaxAge)
	assert.False(t, cfg.Pretty)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yml")
	body := "server_name: demo\naddress: \":9090\"\npretty: true\ndisable_playground: true\n"
	require.NoError(t, ioutil.WriteFile(path, []byte(body), os.FileMode(0o600)))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.ServerName)
	assert.Equal(t, ":9090", cfg.Address)
	assert.True(t, cfg.Pretty)
	assert.True(t, cfg.DisablePlayground)
	// Unset keys keep their defaults.
	assert.Equal(t, "graphql", cfg.GraphEntrypoint)
	assert.Equal(t, 86400, cfg.MaxAge)
}

func TestConfigToolSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yml")
	body := "graph_entrypoint: api\ntools:\n  - kind: graphiql\n  - kind: voyager\n    url: /explore\n"
	require.NoError(t, ioutil.WriteFile(path, []byte(body), os.FileMode(0o600)))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Tools, 2)

	opts, err := cfg.Options()
	require.NoError(t, err)
	router := routerFor(t, opts)

	// Selected pages mount on their URLs and point at the entrypoint.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql/graphiql", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/explore", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "voyager")

	// The unselected default page is not mounted.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql/playground", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfigUnknownToolKind(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tools = []ToolConfig{{Kind: "grafana"}}

	_, err := cfg.Options()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tool kind "grafana"`)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to read config file")
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte("\tserver_name: demo"), os.FileMode(0o600)))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to parse config file")
}
