package persistence

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/resource"
	"github.com/enclaveworks/enclave-sdk/pkg/composables"
)

type ResourceRepository struct{}

func NewResourceRepository() resource.Repository {
	return &ResourceRepository{}
}

func (r *ResourceRepository) GetWorkspaceService(
	ctx context.Context,
	workspaceID, serviceID uuid.UUID,
) (*resource.WorkspaceService, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	var svc resource.WorkspaceService
	err = tx.QueryRow(ctx, `
		SELECT id, workspace_id, template_name, template_version
		FROM workspace_services
		WHERE id = $1 AND workspace_id = $2 AND tenant_id = $3`,
		serviceID, workspaceID, tenantID,
	).Scan(&svc.ID, &svc.WorkspaceID, &svc.TemplateName, &svc.TemplateVersion)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, resource.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get workspace service")
	}
	return &svc, nil
}

func (r *ResourceRepository) GetUserResource(
	ctx context.Context,
	workspaceID, serviceID, resourceID uuid.UUID,
) (*resource.UserResource, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	var (
		res        resource.UserResource
		properties []byte
	)
	err = tx.QueryRow(ctx, `
		SELECT id, workspace_id, parent_service_id, template_name,
		       template_version, owner_id, properties, created_at
		FROM user_resources
		WHERE id = $1 AND workspace_id = $2 AND parent_service_id = $3 AND tenant_id = $4`,
		resourceID, workspaceID, serviceID, tenantID,
	).Scan(
		&res.ID,
		&res.WorkspaceID,
		&res.ParentWorkspaceServiceID,
		&res.TemplateName,
		&res.TemplateVersion,
		&res.OwnerID,
		&properties,
		&res.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, resource.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user resource")
	}
	if err := json.Unmarshal(properties, &res.Properties); err != nil {
		return nil, errors.Wrap(err, "failed to decode user resource properties")
	}
	return &res, nil
}

func (r *ResourceRepository) CreateUserResource(
	ctx context.Context,
	res *resource.UserResource,
) (*resource.UserResource, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	properties, err := json.Marshal(res.Properties)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode user resource properties")
	}

	stored := *res
	_, err = tx.Exec(ctx, `
		INSERT INTO user_resources (
			id, tenant_id, workspace_id, parent_service_id, template_name,
			template_version, owner_id, properties, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		stored.ID,
		tenantID,
		stored.WorkspaceID,
		stored.ParentWorkspaceServiceID,
		stored.TemplateName,
		stored.TemplateVersion,
		stored.OwnerID,
		properties,
		stored.CreatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert user resource")
	}
	return &stored, nil
}
