// Package client is a small GraphQL-over-HTTP client. It posts JSON
// operations to an endpoint served by this module (or any server that
// speaks the same protocol) and decodes the response envelope.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/borderlesshq/gqlhttp/graphql"
)

type Header = http.Header

// OperationRequest is the JSON body of a GraphQL POST request.
type OperationRequest struct {
	Query         string                 `json:"query,omitempty"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type Options struct {
	headers    Header
	httpClient *http.Client
}

type Option func(*Options) error

// SetHeader sets a header sent with every request. Note, duplicate
// headers are replaced with the newest value provided.
func SetHeader(key, value string) Option {
	return func(options *Options) error {
		if options.headers == nil {
			options.headers = make(Header)
		}
		options.headers.Set(key, value)
		return nil
	}
}

// SetHTTPClient swaps the underlying http.Client, e.g. to set timeouts
// or a custom transport.
func SetHTTPClient(hc *http.Client) Option {
	return func(options *Options) error {
		if hc == nil {
			return errors.New("http client must not be nil")
		}
		options.httpClient = hc
		return nil
	}
}

type Client struct {
	Endpoint string
	Headers  Header

	httpClient *http.Client
}

// NewClient creates a new http client wrapper for the given endpoint.
func NewClient(endpoint string, options ...Option) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("graphql endpoint is required")
	}

	opts := &Options{headers: make(Header)}
	for _, option := range options {
		if err := option(opts); err != nil {
			return nil, err
		}
	}

	hc := opts.httpClient
	if hc == nil {
		hc = http.DefaultClient
	}

	return &Client{
		Endpoint:   endpoint,
		Headers:    opts.headers,
		httpClient: hc,
	}, nil
}

func (c *Client) exec(ctx context.Context, operationName string, query string, variables map[string]interface{}, t interface{}, header Header) (*graphql.Response, error) {
	opres, err := c.do(ctx, OperationRequest{
		Query:         query,
		OperationName: operationName,
		Variables:     variables,
	}, header)
	if err != nil {
		return nil, err
	}

	if t != nil {
		if err := opres.UnmarshalData(t); err != nil {
			return nil, errors.Wrap(err, "unable to decode response data")
		}
	}

	if len(opres.Errors) > 0 {
		return nil, opres.Errors
	}

	return opres, nil
}

func (c *Client) do(ctx context.Context, op OperationRequest, header Header) (*graphql.Response, error) {
	body, err := json.Marshal(op)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode operation")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "unable to build request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, values := range c.Headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "graphql request failed")
	}
	defer func() {
		_ = res.Body.Close()
	}()

	var opres graphql.Response
	if err := json.NewDecoder(res.Body).Decode(&opres); err != nil {
		return nil, errors.Wrapf(err, "unable to decode graphql response (status %d)", res.StatusCode)
	}

	return &opres, nil
}

// Query runs a query.
// operationName is optional.
func (c *Client) Query(ctx context.Context, operationName string, query string, variables map[string]interface{}, t interface{}, header Header) (*graphql.Response, error) {
	return c.exec(ctx, operationName, query, variables, t, header)
}

// Mutation runs a mutation.
// operationName is optional.
func (c *Client) Mutation(ctx context.Context, operationName string, query string, variables map[string]interface{}, t interface{}, header Header) (*graphql.Response, error) {
	return c.exec(ctx, operationName, query, variables, t, header)
}
