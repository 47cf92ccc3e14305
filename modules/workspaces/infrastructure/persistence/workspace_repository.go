package persistence

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/workspace"
	"github.com/enclaveworks/enclave-sdk/pkg/composables"
)

type WorkspaceRepository struct{}

func NewWorkspaceRepository() workspace.Repository {
	return &WorkspaceRepository{}
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*workspace.Workspace, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	var (
		ws         workspace.Workspace
		properties []byte
	)
	err = tx.QueryRow(ctx, `
		SELECT id, tenant_id, title, template_name, template_version,
		       deployment_status, properties, created_at, updated_at
		FROM workspaces
		WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	).Scan(
		&ws.ID,
		&ws.TenantID,
		&ws.Title,
		&ws.TemplateName,
		&ws.TemplateVersion,
		&ws.DeploymentStatus,
		&properties,
		&ws.CreatedAt,
		&ws.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workspace.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get workspace")
	}
	if err := json.Unmarshal(properties, &ws.Properties); err != nil {
		return nil, errors.Wrap(err, "failed to decode workspace properties")
	}
	return &ws, nil
}
