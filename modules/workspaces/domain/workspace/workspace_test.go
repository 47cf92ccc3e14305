package workspace_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/workspace"
)

func TestAirlockEnabled(t *testing.T) {
	tests := []struct {
		name            string
		properties      workspace.Properties
		platformDefault bool
		want            bool
	}{
		{"explicit true", workspace.Properties{"enable_airlock": true}, false, true},
		{"explicit false", workspace.Properties{"enable_airlock": false}, true, false},
		{"absent inherits default true", workspace.Properties{}, true, true},
		{"absent inherits default false", workspace.Properties{}, false, false},
		{"malformed inherits default", workspace.Properties{"enable_airlock": "yes"}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := &workspace.Workspace{Properties: tt.properties}
			assert.Equal(t, tt.want, ws.AirlockEnabled(tt.platformDefault))
		})
	}
}

func TestAirlockReviewConfig(t *testing.T) {
	importWorkspaceID := uuid.New()
	serviceID := uuid.New()

	ws := &workspace.Workspace{
		Properties: workspace.Properties{
			"airlock_review_config": map[string]any{
				"import": map[string]any{
					"workspace_id":                importWorkspaceID.String(),
					"workspace_service_id":        serviceID.String(),
					"user_resource_template_name": "tre-review-vm",
				},
				"export": map[string]any{
					"workspace_service_id":        serviceID.String(),
					"user_resource_template_name": "tre-review-vm",
				},
			},
		},
	}

	cfg, err := ws.AirlockReviewConfig()
	require.NoError(t, err)
	assert.Equal(t, importWorkspaceID, cfg.Import.WorkspaceID)
	assert.Equal(t, serviceID, cfg.Import.WorkspaceServiceID)
	assert.Equal(t, "tre-review-vm", cfg.Import.UserResourceTemplateName)
	assert.Equal(t, uuid.Nil, cfg.Export.WorkspaceID)
	assert.Equal(t, serviceID, cfg.Export.WorkspaceServiceID)
}

func TestAirlockReviewConfig_Missing(t *testing.T) {
	ws := &workspace.Workspace{Properties: workspace.Properties{}}
	_, err := ws.AirlockReviewConfig()
	assert.ErrorIs(t, err, workspace.ErrReviewConfigInvalid)
}

func TestAirlockReviewConfig_Malformed(t *testing.T) {
	ws := &workspace.Workspace{
		Properties: workspace.Properties{
			"airlock_review_config": map[string]any{
				"import": "not an object",
			},
		},
	}
	_, err := ws.AirlockReviewConfig()
	assert.ErrorIs(t, err, workspace.ErrReviewConfigInvalid)
}
