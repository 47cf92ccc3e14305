package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/access"
	"github.com/enclaveworks/enclave-sdk/pkg/composables"
)

// WithPool makes the database pool available to downstream handlers.
func WithPool(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithPool(r.Context(), pool)))
		})
	}
}

// txResponseWriter buffers the handler's output so the transaction can
// commit before anything reaches the client.
type txResponseWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newTxResponseWriter() *txResponseWriter {
	return &txResponseWriter{header: http.Header{}}
}

func (w *txResponseWriter) Header() http.Header { return w.header }

func (w *txResponseWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *txResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

func (w *txResponseWriter) flush(dst http.ResponseWriter) {
	for key, values := range w.header {
		for _, value := range values {
			dst.Header().Add(key, value)
		}
	}
	if w.status == 0 {
		w.status = http.StatusOK
	}
	dst.WriteHeader(w.status)
	_, _ = dst.Write(w.body.Bytes())
}

// WithTransaction wraps each request in a transaction. The handler writes
// into a buffer that is released only after a successful commit; a commit
// failure surfaces as a 500 instead of a success response for a write that
// never landed.
func WithTransaction() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pool, err := composables.UsePool(r.Context())
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			tx, err := pool.Begin(r.Context())
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			defer func() {
				if err := tx.Rollback(r.Context()); err != nil {
					if errors.Is(err, pgx.ErrTxClosed) {
						return
					}
					composables.UseLogger(r.Context()).WithError(err).Error("failed to rollback transaction")
				}
			}()
			r = r.WithContext(composables.WithTx(r.Context(), tx))

			buffered := newTxResponseWriter()
			next.ServeHTTP(buffered, r)
			if err := tx.Commit(r.Context()); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
				composables.UseLogger(r.Context()).WithError(err).Error("failed to commit transaction")
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			buffered.flush(w)
		})
	}
}

// ProvideActor builds the caller identity from the gateway-injected identity
// headers. Authentication itself happens upstream at the platform gateway;
// requests without an identity are rejected here.
func ProvideActor() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := uuid.Parse(r.Header.Get("X-User-Id"))
			if err != nil {
				http.Error(w, "missing caller identity", http.StatusUnauthorized)
				return
			}
			roles := access.NewRoleSet()
			for _, raw := range strings.Split(r.Header.Get("X-User-Roles"), ",") {
				if role := strings.TrimSpace(raw); role != "" {
					roles[access.Role(role)] = struct{}{}
				}
			}
			actor := access.Actor{
				ID:    userID,
				Name:  r.Header.Get("X-User-Name"),
				Email: r.Header.Get("X-User-Email"),
				Roles: roles,
			}
			next.ServeHTTP(w, r.WithContext(composables.WithActor(r.Context(), actor)))
		})
	}
}

// ProvideTenant scopes the request to the tenant named by the gateway.
func ProvideTenant() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID, err := uuid.Parse(r.Header.Get("X-Tenant-Id"))
			if err != nil {
				http.Error(w, "missing tenant", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithTenantID(r.Context(), tenantID)))
		})
	}
}
