package handler

import (
	"net/http"
	"strconv"
	"strings"
)

var preflightMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
}

// processPreflight answers the CORS negotiation browsers send ahead of
// cross-origin requests. Anything but the accepted methods is a bare 400.
func (h *Handler) processPreflight(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	method := strings.ToUpper(r.Header.Get("Access-Control-Request-Method"))

	for _, m := range preflightMethods {
		if method != m {
			continue
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", strings.Join(preflightMethods, ", "))
		w.Header().Set("Access-Control-Max-Age", strconv.Itoa(h.maxAge))
		w.WriteHeader(http.StatusOK)
		return
	}

	w.WriteHeader(http.StatusBadRequest)
}
