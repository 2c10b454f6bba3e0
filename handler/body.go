package handler

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"io/ioutil"
	"mime"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/borderlesshq/gqlhttp/graphql"
)

// errInvalidBodyJSON is the transport-level diagnostic for a POST body that
// does not decode as a JSON object.
var errInvalidBodyJSON = errors.New("POST body sent invalid JSON.")

// parseBody reads a POST body into raw operation params according to its
// media type. Unknown media types yield an empty operation; the pipeline
// rejects it later for the missing query.
func parseBody(r *http.Request) (graphql.RawParams, error) {
	var params graphql.RawParams

	if r.Header.Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			return params, errors.Wrap(err, "Unable to parse gzip")
		}
		r.Body = gzreadCloser{zr, r.Body}
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/graphql":
		body, err := ioutil.ReadAll(r.Body)
		if err != nil {
			return params, errors.Wrap(err, "unable to read request body")
		}
		params.Query = string(body)

	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			return params, errInvalidBodyJSON
		}

	case "application/x-www-form-urlencoded", "multipart/form-data":
		form, err := formValues(r, mediaType)
		if err != nil {
			return params, err
		}
		params.Query = lastValue(form, "query")
		params.OperationName = lastValue(form, "operationName")
		if vs := lastValue(form, "variables"); vs != "" {
			params.Variables = vs
		}
	}

	return params, nil
}

func formValues(r *http.Request, mediaType string) (url.Values, error) {
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return nil, errors.Wrap(err, "unable to parse multipart form")
		}
		return r.PostForm, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, errors.Wrap(err, "unable to parse form")
	}
	return r.PostForm, nil
}

// lastValue collapses duplicate form keys to the last value sent.
func lastValue(form url.Values, key string) string {
	vs := form[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[len(vs)-1]
}

// mergeVariables layers body-provided variables over the query-string ones.
// Body variables arrive either as a decoded object or as a string holding a
// JSON-encoded object.
func mergeVariables(dst map[string]interface{}, body interface{}) error {
	switch v := body.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		for k, val := range v {
			dst[k] = val
		}
		return nil
	case string:
		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			return errors.Wrap(err, "unable to decode variables")
		}
		for k, val := range decoded {
			dst[k] = val
		}
		return nil
	default:
		return errors.Errorf("variables must be a JSON object, got %T", body)
	}
}

type gzreadCloser struct {
	*gzip.Reader
	io.Closer
}

func (gz gzreadCloser) Close() error {
	if err := gz.Reader.Close(); err != nil {
		return err
	}
	return gz.Closer.Close()
}
