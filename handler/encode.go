package handler

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/borderlesshq/gqlhttp/graphql"
)

// encode serializes an execution outcome. A request flagged invalid answers
// 400 and drops a data key that holds nothing but null; a valid one answers
// 200 and keeps an explicit null.
func (h *Handler) encode(w http.ResponseWriter, r *http.Request, res *graphql.Response, invalid bool) {
	status := http.StatusOK
	if invalid {
		status = http.StatusBadRequest
		res.DropNullData()
	}
	h.write(w, r, status, res, h.isPretty(r))
}

// writeError sends a transport-shape error: extra headers, fixed status, and
// an always-compact body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, headers map[string]string, res *graphql.Response) {
	for k, v := range headers {
		w.Header().Set(k, v)
	}
	h.write(w, r, status, res, false)
}

// write marshals and sends the response, compressing for clients that accept
// gzip. Headers must be complete before this point.
func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, res *graphql.Response, pretty bool) {
	var body []byte
	var err error
	if pretty {
		body, err = json.MarshalIndent(res, "", "  ")
	} else {
		body, err = json.Marshal(res)
	}
	if err != nil {
		h.log.WithError(err).Error("unable to marshal graphql response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	var out io.Writer = w
	if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		w.Header().Set("Content-Encoding", "gzip")
		gzw := gzip.NewWriter(w)
		defer func() {
			if err := gzw.Close(); err != nil {
				h.log.WithError(err).Error("unable to flush gzip response")
			}
		}()
		out = gzw
	}

	w.WriteHeader(status)
	if _, err := out.Write(body); err != nil {
		h.log.WithError(err).Error("unable to write graphql response")
	}
}
