package resource

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("resource not found")

// WorkspaceService is a shared service deployed inside a workspace, e.g. a
// virtual desktop gateway. User resources always hang off a service.
type WorkspaceService struct {
	ID              uuid.UUID `json:"id"`
	WorkspaceID     uuid.UUID `json:"workspaceId"`
	TemplateName    string    `json:"templateName"`
	TemplateVersion string    `json:"templateVersion"`
}

// UserResource is a per-user compute resource owned by a workspace service,
// such as the transient VM provisioned for an airlock review.
type UserResource struct {
	ID                       uuid.UUID      `json:"id"`
	WorkspaceID              uuid.UUID      `json:"workspaceId"`
	ParentWorkspaceServiceID uuid.UUID      `json:"parentWorkspaceServiceId"`
	TemplateName             string         `json:"templateName"`
	TemplateVersion          string         `json:"templateVersion"`
	OwnerID                  uuid.UUID      `json:"ownerId"`
	Properties               map[string]any `json:"properties"`
	CreatedAt                time.Time      `json:"createdAt"`
}

type Repository interface {
	GetWorkspaceService(ctx context.Context, workspaceID, serviceID uuid.UUID) (*WorkspaceService, error)
	GetUserResource(ctx context.Context, workspaceID, serviceID, resourceID uuid.UUID) (*UserResource, error)
	CreateUserResource(ctx context.Context, res *UserResource) (*UserResource, error)
}
