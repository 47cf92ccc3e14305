package workspace

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("workspace not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Workspace, error)
}
