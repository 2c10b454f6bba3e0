package graphql

// RawParams is an operation as read off the wire, before variable merging.
// Variables may be a JSON object or a string holding a JSON-encoded object
// (form fields and some clients double-encode them); the handler resolves
// both into the effective variable map.
type RawParams struct {
	Query         string      `json:"query"`
	OperationName string      `json:"operationName"`
	Variables     interface{} `json:"variables"`
}
