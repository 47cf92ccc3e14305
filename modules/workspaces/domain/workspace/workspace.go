package workspace

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	DeploymentStatusDeployed  = "deployed"
	DeploymentStatusDeploying = "deploying"
	DeploymentStatusFailed    = "deployment_failed"
)

var ErrReviewConfigInvalid = errors.New("airlock review configuration is missing or malformed")

// Workspace is a tenant's research workspace. Behavioral settings live in the
// free-form Properties document so workspace templates can extend them
// without schema changes.
type Workspace struct {
	ID               uuid.UUID  `json:"id"`
	TenantID         uuid.UUID  `json:"tenantId"`
	Title            string     `json:"title"`
	TemplateName     string     `json:"templateName"`
	TemplateVersion  string     `json:"templateVersion"`
	DeploymentStatus string     `json:"deploymentStatus"`
	Properties       Properties `json:"properties"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type Properties map[string]any

func (w *Workspace) Deployed() bool {
	return w.DeploymentStatus == DeploymentStatusDeployed
}

// AirlockEnabled reports whether the data egress/ingress workflow is enabled
// for this workspace. Workspaces without an explicit enable_airlock property
// inherit the platform default.
func (w *Workspace) AirlockEnabled(platformDefault bool) bool {
	v, ok := w.Properties["enable_airlock"]
	if !ok {
		return platformDefault
	}
	enabled, ok := v.(bool)
	if !ok {
		return platformDefault
	}
	return enabled
}

// ReviewTarget names where a transient review resource gets provisioned.
type ReviewTarget struct {
	WorkspaceID              uuid.UUID `json:"workspace_id"`
	WorkspaceServiceID       uuid.UUID `json:"workspace_service_id"`
	UserResourceTemplateName string    `json:"user_resource_template_name"`
}

// ReviewConfig is the per-workspace airlock review configuration. Import
// reviews happen in a dedicated review workspace; export reviews happen in
// the request's own workspace, so the import target carries a workspace id
// and the export target does not.
type ReviewConfig struct {
	Import ReviewTarget `json:"import"`
	Export ReviewTarget `json:"export"`
}

// AirlockReviewConfig decodes the airlock_review_config property. Returns
// ErrReviewConfigInvalid when the property is absent or malformed.
func (w *Workspace) AirlockReviewConfig() (*ReviewConfig, error) {
	raw, ok := w.Properties["airlock_review_config"]
	if !ok {
		return nil, ErrReviewConfigInvalid
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, ErrReviewConfigInvalid
	}
	var cfg ReviewConfig
	if err := json.Unmarshal(buf, &cfg); err != nil {
		return nil, ErrReviewConfigInvalid
	}
	return &cfg, nil
}
