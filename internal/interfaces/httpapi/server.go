package httpapi

import (
	"net/http"

	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
)

// RouterConfig carries the router-level settings that do not belong to any
// single handler.
type RouterConfig struct {
	InternalJobToken string
	AllowedOrigins   []string
}

// NewRouter builds the full HTTP handler chain: tracing on the outside so
// every log line can carry trace correlation, then request logging, CORS,
// and panic recovery around the route mux.
func NewRouter(h *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	registerRoutes(mux, h, cfg)
	return RequestTracing(RequestLogging(logger, CORS(cfg.AllowedOrigins, recoverPanic(logger, mux))))
}

func registerRoutes(mux *http.ServeMux, h *Handler, cfg RouterConfig) {
	mux.HandleFunc("GET /healthz", h.Healthz)

	mux.Handle("GET /v1/roster", RequireUserID(http.HandlerFunc(h.GetRoster)))
	mux.Handle("PUT /v1/roster", RequireUserID(http.HandlerFunc(h.SaveRoster)))
	mux.Handle("GET /v1/roster/history", RequireUserID(http.HandlerFunc(h.GetRosterHistory)))

	mux.Handle("POST /internal/jobs/rounds", RequireInternalJobToken(cfg.InternalJobToken, http.HandlerFunc(h.RunRoundJob)))
	mux.Handle("POST /internal/jobs/ingest", RequireInternalJobToken(cfg.InternalJobToken, http.HandlerFunc(h.RunIngestJob)))
	mux.Handle("POST /internal/jobs/scores", RequireInternalJobToken(cfg.InternalJobToken, http.HandlerFunc(h.RunScoresJob)))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeError(w, http.StatusInternalServerError, "INTERNAL", "internalError", "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
