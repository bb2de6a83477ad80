// Package visit exposes the public visit counter endpoint. It is the
// only endpoint called by anonymous page views, so it carries its own
// permissive CORS headers and never requires a session.
package visit

import (
	"errors"
	"log/slog"
	"net/http"

	"personal-site/internal/handler/http/requestid"
	"personal-site/internal/handler/http/respond"
	"personal-site/internal/observability/metrics"
	visitUC "personal-site/internal/usecase/visit"
)

type Handler struct {
	Svc    *visitUC.Service
	Logger *slog.Logger
}

// ServeHTTP implements the counter contract: POST increments and
// returns the new value, OPTIONS answers the CORS preflight, GET
// returns the current value without counting, and every other method
// is rejected. Responses are world-readable (Access-Control-Allow-
// Origin: *); the counter holds nothing sensitive.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
	case http.MethodPost:
		h.increment(w, r)
	case http.MethodGet:
		h.current(w, r)
	default:
		respond.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (h Handler) increment(w http.ResponseWriter, r *http.Request) {
	value, err := h.Svc.Increment(r.Context())
	if err != nil {
		h.Logger.Error("visit increment failed",
			slog.String("request_id", requestid.FromContext(r.Context())),
			slog.Any("error", err))
		respond.Error(w, http.StatusInternalServerError, errors.New("failed to update visits"))
		return
	}
	metrics.RecordSiteVisit()
	respond.JSON(w, http.StatusOK, map[string]int64{"value": value})
}

// current is the read-only fallback: it never increments, and a failed
// read degrades to the counter's floor value instead of an error so
// the page can always render something.
func (h Handler) current(w http.ResponseWriter, r *http.Request) {
	value, err := h.Svc.Current(r.Context())
	if err != nil {
		h.Logger.Warn("visit read failed, serving floor value",
			slog.String("request_id", requestid.FromContext(r.Context())),
			slog.Any("error", err))
		value = 1
	}
	respond.JSON(w, http.StatusOK, map[string]int64{"value": value})
}

// Register mounts the counter endpoint.
func Register(mux *http.ServeMux, svc *visitUC.Service, logger *slog.Logger) {
	mux.Handle("/visits", Handler{Svc: svc, Logger: logger})
}
