package access

import (
	"context"

	"github.com/google/uuid"
)

// RoleAssignmentDirectory resolves which contact addresses are reachable for
// each role on a workspace. Stakeholder notifications are addressed from the
// result, so callers treat an empty role entry as "nobody to notify".
type RoleAssignmentDirectory interface {
	WorkspaceRoleAssignments(ctx context.Context, workspaceID uuid.UUID) (map[Role][]string, error)
}
