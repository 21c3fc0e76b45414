package web

import (
	"net/http"

	"github.com/riskibarqy/rankks/internal/metrics"
	"github.com/riskibarqy/rankks/internal/platform/logging"
)

// RouterOptions configures the optional parts of the router.
type RouterOptions struct {
	CORSAllowedOrigins []string
	// Metrics is served on /metrics when MetricsEnabled is set.
	Metrics        *metrics.Recorder
	MetricsEnabled bool
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts)
	registerPageRoutes(mux, handler)
	registerAPIRoutes(mux, handler)

	inner := recoverPanic(logger, capturePattern(mux))
	return RequestTracing(RequestID(RequestLogging(logger, opts.Metrics, CORS(opts.CORSAllowedOrigins, inner))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
