package main

import (
	"net/http"
	"strings"
	"time"

	gql "github.com/graphql-go/graphql"
	"github.com/pkg/errors"

	"github.com/borderlesshq/gqlhttp/engine"
)

// demoSchema is just enough surface to try queries, mutations,
// variables and the request context from the IDE pages.
func demoSchema() (gql.Schema, error) {
	queryRoot := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"hello": &gql.Field{
				Type: gql.String,
				Args: gql.FieldConfigArgument{
					"who": &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					who, _ := p.Args["who"].(string)
					if who == "" {
						who = "World"
					}
					return "Hello " + who, nil
				},
			},
			"serverTime": &gql.Field{
				Type: gql.String,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return time.Now().UTC().Format(time.RFC3339), nil
				},
			},
			"userAgent": &gql.Field{
				Type: gql.String,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					cv, _ := engine.ContextValue(p.Context).(map[string]interface{})
					req, _ := cv["request"].(*http.Request)
					if req == nil {
						return nil, errors.New("no request in context")
					}
					return req.UserAgent(), nil
				},
			},
		},
	})

	mutationRoot := gql.NewObject(gql.ObjectConfig{
		Name: "Mutation",
		Fields: gql.Fields{
			"shout": &gql.Field{
				Type: gql.String,
				Args: gql.FieldConfigArgument{
					"message": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					message, _ := p.Args["message"].(string)
					return strings.ToUpper(message) + "!", nil
				},
			},
		},
	})

	return gql.NewSchema(gql.SchemaConfig{Query: queryRoot, Mutation: mutationRoot})
}
