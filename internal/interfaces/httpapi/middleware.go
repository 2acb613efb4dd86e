package httpapi

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
	"github.com/aymenbt/fantasy-ligue/internal/usecase"
)

const (
	userIDHeader           = "X-User-ID"
	internalJobTokenHeader = "X-Internal-Job-Token"
)

// RequireUserID extracts the caller identity from the X-User-ID header and
// stores it in the request context. Requests without an identity are rejected.
func RequireUserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(userIDHeader))
		if userID == "" {
			writeMappedError(w, usecase.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

// RequireInternalJobToken guards internal job routes with a shared secret.
// An empty configured token means the deployment is misconfigured; the
// routes fail closed instead of becoming public.
func RequireInternalJobToken(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token == "" {
			writeMappedError(w, usecase.ErrDependencyUnavailable)
			return
		}
		got := r.Header.Get(internalJobTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			writeMappedError(w, usecase.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogging logs one line per request with trace correlation fields.
func RequestLogging(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestTracing wraps the handler with OpenTelemetry HTTP server spans.
// Health probes are excluded to keep traces signal-dense.
func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "httpapi",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz"
		}),
	)
}

// CORS handles cross-origin requests for the configured origins. An empty
// origin list disables the middleware entirely.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		return next
	}
	allowed := make(map[string]struct{}, len(allowedOrigins))
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			_, ok := allowed[origin]
			if allowAll || ok {
				if allowAll {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				}
				w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+userIDHeader)
			}
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
