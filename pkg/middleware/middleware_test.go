package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/access"
	"github.com/enclaveworks/enclave-sdk/pkg/composables"
	"github.com/enclaveworks/enclave-sdk/pkg/middleware"
)

func TestProvideActor(t *testing.T) {
	userID := uuid.New()
	var got access.Actor
	handler := middleware.ProvideActor()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := composables.UseActor(r.Context())
		require.NoError(t, err)
		got = actor
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-Id", userID.String())
	req.Header.Set("X-User-Name", "alice")
	req.Header.Set("X-User-Email", "alice@example.org")
	req.Header.Set("X-User-Roles", "WorkspaceResearcher, AirlockManager")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, got.ID)
	assert.Equal(t, "alice", got.Name)
	assert.True(t, got.Roles.Has(access.RoleWorkspaceResearcher))
	assert.True(t, got.Roles.Has(access.RoleAirlockManager))
	assert.False(t, got.Roles.Has(access.RoleWorkspaceOwner))
}

func TestProvideActor_MissingIdentity(t *testing.T) {
	handler := middleware.ProvideActor()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without an identity")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProvideTenant(t *testing.T) {
	tenantID := uuid.New()
	var got uuid.UUID
	handler := middleware.ProvideTenant()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := composables.UseTenantID(r.Context())
		require.NoError(t, err)
		got = id
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Tenant-Id", tenantID.String())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tenantID, got)
}

func TestProvideTenant_Missing(t *testing.T) {
	handler := middleware.ProvideTenant()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a tenant")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
