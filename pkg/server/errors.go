package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
	"github.com/dmitrymomot/intldomain/pkg/loader"
	"github.com/dmitrymomot/intldomain/pkg/locale"
	"github.com/dmitrymomot/intldomain/pkg/logger"
)

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// statusOf maps domain errors to HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, locale.ErrInvalidTag),
		errors.Is(err, loader.ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnsupportedLocale),
		errors.Is(err, domaindb.ErrUnknownDomain),
		errors.Is(err, domaindb.ErrLoaderMissing),
		errors.Is(err, domaindb.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, domaindb.ErrNotTemplate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		s.logger.WarnContext(r.Context(), "request failed", slog.Any("error", err))
		msg = http.StatusText(status)
	}

	writeJSON(w, status, errorBody{Error: msg, RequestID: logger.RequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
