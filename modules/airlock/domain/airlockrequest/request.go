package airlockrequest

import (
	"time"

	"github.com/google/uuid"

	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/access"
)

// Status is the lifecycle state of an airlock request. Transitions between
// statuses are governed exclusively by the allow-list in transitions.go.
type Status string

const (
	StatusDraft               Status = "draft"
	StatusSubmitted           Status = "submitted"
	StatusInReview            Status = "in_review"
	StatusApprovalInProgress  Status = "approval_in_progress"
	StatusApproved            Status = "approved"
	StatusRejectionInProgress Status = "rejection_in_progress"
	StatusRejected            Status = "rejected"
	StatusCancelled           Status = "cancelled"
	StatusBlocked             Status = "blocked"
)

// Type distinguishes data moving into or out of the workspace.
type Type string

const (
	TypeImport Type = "import"
	TypeExport Type = "export"
)

// Decision is a reviewer's verdict on a request.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// Action is a lifecycle operation a caller may invoke next on a request.
type Action string

const (
	ActionReview Action = "review"
	ActionCancel Action = "cancel"
	ActionSubmit Action = "submit"
)

// File references a payload object attached to a request.
type File struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Review is a manager's recorded decision. Reviews are append-only: once
// created they are never mutated or removed from the request history.
type Review struct {
	ID                  uuid.UUID    `json:"id"`
	Decision            Decision     `json:"reviewDecision"`
	DecisionExplanation string       `json:"decisionExplanation"`
	Reviewer            access.Actor `json:"reviewer"`
	CreatedAt           time.Time    `json:"createdWhen"`
}

// ReviewUserResource links a request to the transient compute resource
// provisioned for manual review. It is a reference, not ownership: the
// resource itself lives in the workspaces module.
type ReviewUserResource struct {
	WorkspaceID        uuid.UUID `json:"workspaceId"`
	WorkspaceServiceID uuid.UUID `json:"workspaceServiceId"`
	UserResourceID     uuid.UUID `json:"userResourceId"`
}

// AirlockRequest is a governed data import/export request attached to a
// workspace. WorkspaceID, Type, CreatedBy and CreatedAt are immutable after
// creation. Version is the optimistic-concurrency token: every conditional
// write must present the stored value and bumps it by one.
type AirlockRequest struct {
	ID                    uuid.UUID            `json:"id"`
	WorkspaceID           uuid.UUID            `json:"workspaceId"`
	Type                  Type                 `json:"type"`
	Title                 string               `json:"title"`
	BusinessJustification string               `json:"businessJustification"`
	Status                Status               `json:"status"`
	StatusMessage         string               `json:"statusMessage,omitempty"`
	Files                 []File               `json:"files"`
	Reviews               []Review             `json:"reviews"`
	ReviewUserResources   []ReviewUserResource `json:"reviewUserResources"`
	CreatedBy             access.Actor         `json:"createdBy"`
	UpdatedBy             access.Actor         `json:"updatedBy"`
	CreatedAt             time.Time            `json:"createdWhen"`
	UpdatedAt             time.Time            `json:"updatedWhen"`
	Version               int64                `json:"version"`
}
