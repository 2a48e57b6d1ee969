package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger emits one structured access-log line per request, leveled by
// the response status.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			elapsed := time.Since(start)
			msg := fmt.Sprintf("%s %s %d in %s", r.Method, r.URL.Path, ww.Status(), elapsed)
			logger := slog.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", elapsed),
			)

			switch {
			case ww.Status() >= http.StatusInternalServerError:
				logger.ErrorContext(r.Context(), msg)
			case ww.Status() >= http.StatusBadRequest:
				logger.WarnContext(r.Context(), msg)
			default:
				logger.InfoContext(r.Context(), msg)
			}
		}()

		next.ServeHTTP(ww, r)
	})
}
