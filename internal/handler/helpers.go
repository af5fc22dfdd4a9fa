package handler

import (
	"net/http"
	"strings"

	"chatbackend/internal/httputil"
)

// PathParam reads a path wildcard, answering 400 when it is empty.
// label names the parameter in the error detail.
func PathParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	value := strings.TrimSpace(r.PathValue(name))
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	return value, true
}
