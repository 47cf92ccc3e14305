package deployment

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	domain "github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/deployment"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/resource"
)

// deploymentMessage is the wire format consumed by the external resource
// processor.
type deploymentMessage struct {
	OperationID     uuid.UUID      `json:"operation_id"`
	ResourceID      uuid.UUID      `json:"resource_id"`
	WorkspaceID     uuid.UUID      `json:"workspace_id"`
	Action          string         `json:"action"`
	TemplateName    string         `json:"template_name"`
	TemplateVersion string         `json:"template_version"`
	Properties      map[string]any `json:"properties"`
	RequestedBy     uuid.UUID      `json:"requested_by"`
}

// RedisOrchestrator dispatches deployment work by pushing messages onto a
// Redis list the resource processor consumes.
type RedisOrchestrator struct {
	client *redis.Client
	queue  string
}

func NewRedisOrchestrator(client *redis.Client, queue string) domain.Orchestrator {
	return &RedisOrchestrator{client: client, queue: queue}
}

func (o *RedisOrchestrator) Deploy(
	ctx context.Context,
	res *resource.UserResource,
	requestedBy uuid.UUID,
) (*domain.Operation, error) {
	return o.dispatch(ctx, res, requestedBy, domain.ActionInstall, domain.StatusAwaitingDeployment)
}

func (o *RedisOrchestrator) Uninstall(
	ctx context.Context,
	res *resource.UserResource,
	requestedBy uuid.UUID,
) (*domain.Operation, error) {
	return o.dispatch(ctx, res, requestedBy, domain.ActionUninstall, domain.StatusAwaitingDeletion)
}

func (o *RedisOrchestrator) dispatch(
	ctx context.Context,
	res *resource.UserResource,
	requestedBy uuid.UUID,
	action domain.Action,
	status string,
) (*domain.Operation, error) {
	op := &domain.Operation{
		ID:          uuid.New(),
		ResourceID:  res.ID,
		WorkspaceID: res.WorkspaceID,
		Action:      action,
		Status:      status,
		CreatedBy:   requestedBy,
		CreatedAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(deploymentMessage{
		OperationID:     op.ID,
		ResourceID:      res.ID,
		WorkspaceID:     res.WorkspaceID,
		Action:          string(action),
		TemplateName:    res.TemplateName,
		TemplateVersion: res.TemplateVersion,
		Properties:      res.Properties,
		RequestedBy:     requestedBy,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode deployment message")
	}

	if err := o.client.LPush(ctx, o.queue, payload).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to enqueue deployment message")
	}
	return op, nil
}
