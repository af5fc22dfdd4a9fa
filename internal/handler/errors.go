package handler

import (
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"chatbackend/internal/domain"
	"chatbackend/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Only server-side
// failures are logged; their detail is not sent to the client.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			httputil.RespondErrorWithExtras(w, http.StatusBadRequest, err.Error(), map[string]interface{}{
				"errors": fieldErrs,
			})
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrProvider):
		logger.Error("provider failure", "error", err)
		httputil.RespondError(w, http.StatusBadGateway, "ai provider unavailable")
	default:
		logger.Error("request failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// handleBodyError answers a request whose JSON body could not be read
func handleBodyError(w http.ResponseWriter, err error) {
	if errors.Is(err, httputil.ErrBodyTooLarge) {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
}
