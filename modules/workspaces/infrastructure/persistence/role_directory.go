package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/access"
	"github.com/enclaveworks/enclave-sdk/pkg/composables"
)

// RoleAssignmentDirectory resolves workspace role membership to notification
// addresses from the role assignment table.
type RoleAssignmentDirectory struct{}

func NewRoleAssignmentDirectory() access.RoleAssignmentDirectory {
	return &RoleAssignmentDirectory{}
}

func (d *RoleAssignmentDirectory) WorkspaceRoleAssignments(
	ctx context.Context,
	workspaceID uuid.UUID,
) (map[access.Role][]string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT role, email
		FROM workspace_role_assignments
		WHERE workspace_id = $1 AND tenant_id = $2 AND email <> ''`,
		workspaceID, tenantID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query role assignments")
	}
	defer rows.Close()

	assignments := map[access.Role][]string{}
	for rows.Next() {
		var (
			role  string
			email string
		)
		if err := rows.Scan(&role, &email); err != nil {
			return nil, err
		}
		assignments[access.Role(role)] = append(assignments[access.Role(role)], email)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}
