package composables_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/access"
	"github.com/enclaveworks/enclave-sdk/pkg/composables"
)

func TestActorRoundTrip(t *testing.T) {
	actor := access.Actor{
		ID:    uuid.New(),
		Name:  "alice",
		Email: "alice@example.org",
		Roles: access.NewRoleSet(access.RoleWorkspaceOwner),
	}
	ctx := composables.WithActor(context.Background(), actor)

	got, err := composables.UseActor(ctx)
	require.NoError(t, err)
	assert.Equal(t, actor.ID, got.ID)
	assert.True(t, got.Roles.Has(access.RoleWorkspaceOwner))
}

func TestUseActor_Missing(t *testing.T) {
	_, err := composables.UseActor(context.Background())
	assert.ErrorIs(t, err, composables.ErrNoActor)
}

func TestTenantIDRoundTrip(t *testing.T) {
	tenantID := uuid.New()
	ctx := composables.WithTenantID(context.Background(), tenantID)

	got, err := composables.UseTenantID(ctx)
	require.NoError(t, err)
	assert.Equal(t, tenantID, got)
}

func TestUseTenantID_Missing(t *testing.T) {
	_, err := composables.UseTenantID(context.Background())
	assert.ErrorIs(t, err, composables.ErrNoTenant)
}

func TestUseLogger_FallsBackWithoutContextEntry(t *testing.T) {
	entry := composables.UseLogger(context.Background())
	assert.NotNil(t, entry)
}

func TestUseTx_FallsBackToPoolError(t *testing.T) {
	_, err := composables.UseTx(context.Background())
	assert.ErrorIs(t, err, composables.ErrNoPool)
}
