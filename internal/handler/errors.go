package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"chatrelay/internal/domain"
	"chatrelay/internal/httputil"
)

// handleError maps domain errors to HTTP responses. Remote errors keep the
// backend's status with only the reason in the detail field; anything
// unrecognized becomes a 500.
func handleError(w http.ResponseWriter, err error) {
	var remote *domain.RemoteError
	if errors.As(err, &remote) {
		httputil.RespondError(w, remote.StatusCode(), remote.Reason)
		return
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), err.Error())
		return
	}

	slog.Error("unexpected error", "error", err)
	httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
}
