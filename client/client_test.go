package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gql "github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/borderlesshq/gqlhttp/engine"
	"github.com/borderlesshq/gqlhttp/handler"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	queryRoot := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"hello": &gql.Field{
				Type: gql.String,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return "world", nil
				},
			},
			"echo": &gql.Field{
				Type: gql.String,
				Args: gql.FieldConfigArgument{
					"who": &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					who, _ := p.Args["who"].(string)
					return "Hello " + who, nil
				},
			},
		},
	})

	mutationRoot := gql.NewObject(gql.ObjectConfig{
		Name: "Mutation",
		Fields: gql.Fields{
			"set": &gql.Field{
				Type: gql.String,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return "done", nil
				},
			},
		},
	})

	schema, err := gql.NewSchema(gql.SchemaConfig{Query: queryRoot, Mutation: mutationRoot})
	require.NoError(t, err)

	srv := httptest.NewServer(handler.New(engine.New(schema)))
	t.Cleanup(srv.Close)
	return srv
}

func TestQueryRoundTrip(t *testing.T) {
	srv := testServer(t)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	var out struct {
		Hello string `json:"hello"`
	}
	res, err := c.Query(context.Background(), "", "{ hello }", nil, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, "world", out.Hello)
	assert.True(t, res.HasData())
}

func TestQueryWithVariables(t *testing.T) {
	srv := testServer(t)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	var out struct {
		Echo string `json:"echo"`
	}
	query := "query greet($who: String) { echo(who: $who) }"
	_, err = c.Query(context.Background(), "greet", query, map[string]interface{}{"who": "Dolly"}, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello Dolly", out.Echo)
}

func TestMutationRoundTrip(t *testing.T) {
	srv := testServer(t)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	var out struct {
		Set string `json:"set"`
	}
	_, err = c.Mutation(context.Background(), "", "mutation { set }", nil, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, "done", out.Set)
}

func TestServerErrorsComeBackAsError(t *testing.T) {
	srv := testServer(t)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.Query(context.Background(), "", "{ nope }", nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot query field")

	_, ok := err.(gqlerror.List)
	assert.True(t, ok, "graphql errors keep their type")
}

func TestHeadersForwarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{
				"static":  r.Header.Get("X-Api-Key"),
				"perCall": r.Header.Get("X-Request-Scope"),
			},
		})
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, SetHeader("X-Api-Key", "s3cret"))
	require.NoError(t, err)

	var out struct {
		Static  string `json:"static"`
		PerCall string `json:"perCall"`
	}
	_, err = c.Query(context.Background(), "", "{ static perCall }", nil, &out, Header{"X-Request-Scope": {"once"}})
	require.NoError(t, err)
	assert.Equal(t, "s3cret", out.Static)
	assert.Equal(t, "once", out.PerCall)
}

func TestNonJSONResponseIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.Query(context.Background(), "", "{ hello }", nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to decode graphql response")
	assert.Contains(t, err.Error(), "502")
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("  ")
	require.Error(t, err)

	_, err = NewClient("http://localhost:8080/graphql", SetHTTPClient(nil))
	require.Error(t, err)
}
