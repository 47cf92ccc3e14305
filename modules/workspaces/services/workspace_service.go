package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/workspace"
)

// WorkspaceService exposes workspace lookups to other modules.
type WorkspaceService struct {
	repo workspace.Repository
}

func NewWorkspaceService(repo workspace.Repository) *WorkspaceService {
	return &WorkspaceService{repo: repo}
}

func (s *WorkspaceService) GetByID(ctx context.Context, id uuid.UUID) (*workspace.Workspace, error) {
	return s.repo.GetByID(ctx, id)
}
