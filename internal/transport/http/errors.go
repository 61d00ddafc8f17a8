package httptransport

import (
	"net/http"

	dErrors "integrationhub/pkg/domain-errors"
	"integrationhub/pkg/platform/httputil"
)

func notFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "Cannot "+r.Method+" "+r.URL.Path))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.Envelope{
		Success: false,
		Message: "Method " + r.Method + " not allowed",
		Error:   "method_not_allowed",
	})
}
