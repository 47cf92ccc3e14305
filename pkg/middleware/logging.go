package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/enclaveworks/enclave-sdk/pkg/composables"
	"github.com/enclaveworks/enclave-sdk/pkg/configuration"
)

type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func requestID(r *http.Request, conf *configuration.Configuration) string {
	if id := r.Header.Get(conf.RequestIDHeader); id != "" {
		return id
	}
	return uuid.New().String()
}

// WithLogger attaches a request-scoped logger to the context and logs request
// completion. Panics are recovered, logged with a stack, and answered with a
// 500.
func WithLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := requestID(r, conf)

			entry := logger.WithFields(logrus.Fields{
				"request-id": id,
				"path":       r.URL.Path,
				"method":     r.Method,
			})
			w.Header().Set("X-Request-Id", id)

			sw := &statusWriter{ResponseWriter: w}
			defer func() {
				if recovered := recover(); recovered != nil {
					entry.WithFields(logrus.Fields{
						"panic": recovered,
						"stack": string(debug.Stack()),
					}).Error("panic recovered in request handler")
					if !sw.written {
						http.Error(sw, "internal server error", http.StatusInternalServerError)
					}
				}
			}()

			r = r.WithContext(composables.WithLogger(r.Context(), entry))
			next.ServeHTTP(sw, r)

			entry.WithFields(logrus.Fields{
				"status-code": sw.Status(),
				"duration":    time.Since(start),
			}).Info("request completed")
		})
	}
}
