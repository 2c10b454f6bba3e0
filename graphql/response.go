package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Null is the JSON null literal. An engine reports "execution produced no
// data" with an explicit null so that callers can tell it apart from an
// omitted data key.
var Null = json.RawMessage("null")

// Response is the GraphQL-over-HTTP response body. Data is serialized first,
// matching https://spec.graphql.org/June2018/#sec-Response-Format; a nil Data
// drops the key entirely while Null keeps it as an explicit null.
type Response struct {
	Data       json.RawMessage        `json:"data,omitempty"`
	Errors     gqlerror.List          `json:"errors,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// ErrorResponse formats an error as a data-less response. GraphQL-shaped
// errors keep their locations and path.
func ErrorResponse(err error) *Response {
	return &Response{Errors: AsGQLErrors(err)}
}

// ErrorResponsef builds a data-less response carrying a single
// message-only error.
func ErrorResponsef(format string, args ...interface{}) *Response {
	return &Response{
		Errors: gqlerror.List{{Message: fmt.Sprintf(format, args...)}},
	}
}

// HasData reports whether the response carries a data key that is not the
// JSON null literal.
func (r *Response) HasData() bool {
	return len(r.Data) > 0 && !bytes.Equal(bytes.TrimSpace(r.Data), Null)
}

// DropNullData removes the data key when it holds nothing but null.
// Responses to structurally invalid requests omit data rather than
// serializing "data": null.
func (r *Response) DropNullData() *Response {
	if !r.HasData() {
		r.Data = nil
	}
	return r
}

// UnmarshalData decodes the data payload into t. A missing payload is not an
// error; the caller decides whether the error list makes the response fatal.
func (r *Response) UnmarshalData(t interface{}) error {
	if r.Data == nil {
		return nil
	}
	return json.Unmarshal(r.Data, t)
}
