package events

import (
	"context"

	"github.com/google/uuid"

	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/access"
)

// StatusChanged announces that a request moved between lifecycle statuses.
// PreviousStatus is empty for creation.
type StatusChanged struct {
	RequestID      uuid.UUID `json:"request_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Type           string    `json:"type"`
	WorkspaceID    uuid.UUID `json:"workspace_id"`
}

// Notification fans a lifecycle change out to workspace stakeholders,
// addressed per role from the role-assignment directory.
type Notification struct {
	RequestID   uuid.UUID                `json:"request_id"`
	EventType   string                   `json:"event_type"`
	EventValue  string                   `json:"event_value"`
	Recipients  map[access.Role][]string `json:"recipients"`
	WorkspaceID uuid.UUID                `json:"workspace_id"`
}

// Publisher delivers airlock events to the external bus. Delivery is
// at-least-once. Within one lifecycle change the StatusChanged event must be
// published before the Notification event; consumers rely on that order.
type Publisher interface {
	PublishStatusChanged(ctx context.Context, evt StatusChanged) error
	PublishNotification(ctx context.Context, evt Notification) error
}
