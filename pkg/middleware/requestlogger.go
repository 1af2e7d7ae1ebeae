package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sajathahamed/Unilifmobile/pkg/logger"
)

// RequestLogger stores a logger enriched with correlation, student and trace
// IDs in the request context. Mount it after RequestLogging and Tracing.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if id, ok := StudentIDFromContext(ctx); ok {
				ctx = logger.WithUserID(ctx, strconv.FormatInt(id, 10))
			} else if h := r.Header.Get(StudentHeader); h != "" {
				ctx = logger.WithUserID(ctx, h)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
