package deployment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/resource"
)

type Action string

const (
	ActionInstall   Action = "install"
	ActionUninstall Action = "uninstall"
)

const (
	StatusAwaitingDeployment = "awaiting_deployment"
	StatusAwaitingDeletion   = "awaiting_deletion"
)

// Operation is the handle for an asynchronous deployment dispatched to the
// external resource processor. Progress tracking happens out of process; the
// control plane only hands the id back to the caller.
type Operation struct {
	ID          uuid.UUID `json:"id"`
	ResourceID  uuid.UUID `json:"resourceId"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
	Action      Action    `json:"action"`
	Status      string    `json:"status"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Orchestrator dispatches install/uninstall work for user resources to the
// external deployment processor.
type Orchestrator interface {
	Deploy(ctx context.Context, res *resource.UserResource, requestedBy uuid.UUID) (*Operation, error)
	Uninstall(ctx context.Context, res *resource.UserResource, requestedBy uuid.UUID) (*Operation, error)
}
