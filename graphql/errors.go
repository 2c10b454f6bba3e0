package graphql

import (
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// AsGQLErrors formats an error as a list of GraphQL errors. A gqlerror.List
// is returned as is, a *gqlerror.Error becomes a one item list, and anything
// else is printed into a message-only error. Nil in, nil out.
func AsGQLErrors(err error) gqlerror.List {
	if err == nil {
		return nil
	}

	switch e := err.(type) {
	case *gqlerror.Error:
		return gqlerror.List{e}
	case gqlerror.List:
		return e
	default:
		return gqlerror.List{{Message: e.Error()}}
	}
}
