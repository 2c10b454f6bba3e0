package engine

import "context"

type contextValueKey struct{}

// WithContextValue attaches the per-request GraphQL context value so
// resolvers can reach it through the request context.
func WithContextValue(ctx context.Context, v interface{}) context.Context {
	return context.WithValue(ctx, contextValueKey{}, v)
}

// ContextValue returns the value attached by WithContextValue, or nil.
func ContextValue(ctx context.Context) interface{} {
	return ctx.Value(contextValueKey{})
}
