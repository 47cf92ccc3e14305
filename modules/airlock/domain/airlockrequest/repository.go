package airlockrequest

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("airlock request not found")
	ErrVersionConflict = errors.New("airlock request version conflict")
)

// Filter narrows and orders workspace-scoped listings. OrderBy must be one
// of the whitelisted sort keys; implementations reject anything else.
type Filter struct {
	WorkspaceID uuid.UUID
	CreatorID   uuid.UUID
	Type        Type
	Status      Status
	OrderBy     string
	Ascending   bool
}

// Repository persists airlock request documents. Update is a conditional
// write: it only succeeds when expectedVersion matches the stored version
// token, returning ErrVersionConflict otherwise. The store owns the token;
// callers never fabricate one.
type Repository interface {
	Create(ctx context.Context, req *AirlockRequest) (*AirlockRequest, error)
	Update(ctx context.Context, req *AirlockRequest, expectedVersion int64) (*AirlockRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*AirlockRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter Filter) ([]*AirlockRequest, error)
}
